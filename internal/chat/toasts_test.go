package chat

import "testing"

func TestToastsExpire(t *testing.T) {
	var ts Toasts
	a := ts.Add("ana se ha unido")
	b := ts.Add("beto se ha unido")

	ts.Expire(a)
	items := ts.Items()
	if len(items) != 1 || items[0].ID != b {
		t.Errorf("Items() = %+v", items)
	}

	// Expiring again is harmless.
	ts.Expire(a)
	if len(ts.Items()) != 1 {
		t.Errorf("double expire changed items")
	}
}

func TestToastsClear(t *testing.T) {
	var ts Toasts
	ts.Add("x")
	ts.Add("y")
	ts.Clear()
	if len(ts.Items()) != 0 {
		t.Errorf("Items() after Clear = %d", len(ts.Items()))
	}
}
