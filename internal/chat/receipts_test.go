package chat

import (
	"testing"

	"github.com/pcanos/charla/model"
)

type fakeAcker struct {
	calls []model.MarkReadPayload
}

func (f *fakeAcker) MarkRead(roomID int64, ids []int64) error {
	f.calls = append(f.calls, model.MarkReadPayload{RoomID: roomID, MessageIDs: ids})
	return nil
}

func TestUnreadIDs(t *testing.T) {
	msgs := []model.Message{
		{ID: 1, AuthorID: localUser, State: model.StateSent},  // mine
		{ID: 2, AuthorID: 5, State: model.StateRead},          // already read
		{ID: 3, AuthorID: 5, State: model.StateSent},          // owed
		{ID: 4, AuthorID: 6, State: model.StateDelivered},     // owed
	}
	ids := UnreadIDs(msgs, localUser)
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 4 {
		t.Errorf("UnreadIDs = %v, want [3 4]", ids)
	}
}

func TestAcknowledgeEmptySendsNothing(t *testing.T) {
	var a fakeAcker
	msgs := []model.Message{
		{ID: 1, AuthorID: localUser, State: model.StateSent},
		{ID: 2, AuthorID: 5, State: model.StateRead},
	}
	if err := Acknowledge(&a, 1, msgs, localUser); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	if len(a.calls) != 0 {
		t.Errorf("calls = %d, want 0 for empty batch", len(a.calls))
	}
}

func TestAcknowledgeBatchesOnce(t *testing.T) {
	var a fakeAcker
	// History of 2 messages, both from another author and unread: exactly
	// one receipt carrying both ids.
	msgs := []model.Message{
		{ID: 7, AuthorID: 5, State: model.StateSent},
		{ID: 8, AuthorID: 5, State: model.StateDelivered},
	}
	if err := Acknowledge(&a, 3, msgs, localUser); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	if len(a.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(a.calls))
	}
	got := a.calls[0]
	if got.RoomID != 3 || len(got.MessageIDs) != 2 || got.MessageIDs[0] != 7 || got.MessageIDs[1] != 8 {
		t.Errorf("call = %+v", got)
	}
}

// Round trip: a sent message echoed back with the local author never leaves
// a counter behind and never triggers a receipt.
func TestOwnEchoRoundTrip(t *testing.T) {
	var r Registry
	r.SetMine([]model.Room{{ID: 1, Name: "general"}})
	var f Feed
	f.Reset(1)
	var a fakeAcker

	echo := model.Message{ID: 42, RoomID: 1, AuthorID: localUser, Text: str("hi"), State: model.StateSent}

	// The feed never appends locally on send; the single append is this one.
	if !f.Append(echo) {
		t.Fatal("echo append rejected")
	}
	r.ApplyIncoming(echo, localUser, 1, true)
	if err := Acknowledge(&a, 1, []model.Message{echo}, localUser); err != nil {
		t.Fatal(err)
	}

	if n := len(f.Messages()); n != 1 {
		t.Errorf("feed length = %d, want exactly 1", n)
	}
	if got := r.Mine()[0].Unread; got != 0 {
		t.Errorf("unread = %d, want 0", got)
	}
	if len(a.calls) != 0 {
		t.Errorf("receipt sent for own message")
	}
}
