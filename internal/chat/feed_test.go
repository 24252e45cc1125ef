package chat

import (
	"testing"

	"github.com/pcanos/charla/model"
)

func TestFeedResetReplacesList(t *testing.T) {
	var f Feed
	f.Reset(1)
	f.Append(model.Message{ID: 1, RoomID: 1, Text: str("a")})

	f.Reset(2)
	if len(f.Messages()) != 0 {
		t.Errorf("messages after Reset = %d, want 0", len(f.Messages()))
	}
	if f.RoomID() != 2 {
		t.Errorf("RoomID() = %d", f.RoomID())
	}
}

func TestFeedAppendOnlyOpenRoom(t *testing.T) {
	var f Feed
	f.Reset(1)

	if !f.Append(model.Message{ID: 1, RoomID: 1, Text: str("a")}) {
		t.Error("Append for open room rejected")
	}
	if f.Append(model.Message{ID: 2, RoomID: 9, Text: str("b")}) {
		t.Error("Append for another room accepted")
	}
	if len(f.Messages()) != 1 {
		t.Errorf("len = %d, want 1", len(f.Messages()))
	}
}

func TestFeedAppendKeepsArrivalOrder(t *testing.T) {
	var f Feed
	f.Reset(1)
	// Arrival order wins even when timestamps disagree.
	f.Append(model.Message{ID: 2, RoomID: 1, Timestamp: "2026-01-02T10:00:00Z"})
	f.Append(model.Message{ID: 1, RoomID: 1, Timestamp: "2026-01-02T09:00:00Z"})

	msgs := f.Messages()
	if msgs[0].ID != 2 || msgs[1].ID != 1 {
		t.Errorf("order = %d,%d want 2,1", msgs[0].ID, msgs[1].ID)
	}
}

func TestFeedStaleHistoryDiscarded(t *testing.T) {
	var f Feed
	f.Reset(1)
	f.Reset(2) // user navigated away before the fetch for room 1 returned

	applied := f.ApplyHistory(1, []model.Message{{ID: 1, RoomID: 1}})
	if applied {
		t.Error("stale history applied")
	}
	if len(f.Messages()) != 0 {
		t.Errorf("messages = %d, want 0", len(f.Messages()))
	}

	if !f.ApplyHistory(2, []model.Message{{ID: 5, RoomID: 2}}) {
		t.Error("current-room history rejected")
	}
}

func TestFeedHistoryAfterClose(t *testing.T) {
	var f Feed
	f.Reset(1)
	f.Close()

	if f.ApplyHistory(1, []model.Message{{ID: 1, RoomID: 1}}) {
		t.Error("history applied after Close")
	}
}

func TestFeedUpdateStates(t *testing.T) {
	var f Feed
	f.Reset(1)
	f.Append(model.Message{ID: 1, RoomID: 1, State: model.StateSent})
	f.Append(model.Message{ID: 2, RoomID: 1, State: model.StateSent})
	f.Append(model.Message{ID: 3, RoomID: 1, State: model.StateSent})

	f.UpdateStates([]int64{1, 3, 99}, model.StateRead)

	msgs := f.Messages()
	if msgs[0].State != model.StateRead || msgs[2].State != model.StateRead {
		t.Errorf("states = %q,%q,%q", msgs[0].State, msgs[1].State, msgs[2].State)
	}
	if msgs[1].State != model.StateSent {
		t.Errorf("untouched message state = %q", msgs[1].State)
	}
}

func TestOutgoingText(t *testing.T) {
	if _, ok := OutgoingText("   "); ok {
		t.Error("whitespace-only body accepted")
	}
	if _, ok := OutgoingText(""); ok {
		t.Error("empty body accepted")
	}
	got, ok := OutgoingText("  hola  ")
	if !ok || got != "hola" {
		t.Errorf("OutgoingText = %q, %v", got, ok)
	}
}
