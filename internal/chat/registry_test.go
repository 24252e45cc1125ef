package chat

import (
	"testing"

	"github.com/pcanos/charla/model"
)

const localUser int64 = 10

func str(s string) *string { return &s }

func threeRooms() []model.Room {
	return []model.Room{
		{ID: 1, Name: "general"},
		{ID: 2, Name: "ayuda"},
		{ID: 3, Name: "juegos"},
	}
}

func incoming(roomID, authorID int64, text string) model.Message {
	return model.Message{ID: 100, RoomID: roomID, AuthorID: authorID, Text: str(text), State: model.StateSent}
}

func TestApplyIncomingUnknownRoomDropped(t *testing.T) {
	var r Registry
	r.SetMine(threeRooms())

	r.ApplyIncoming(incoming(99, 5, "hola"), localUser, 0, false)

	mine := r.Mine()
	if len(mine) != 3 {
		t.Fatalf("len(Mine()) = %d", len(mine))
	}
	for _, room := range mine {
		if room.Unread != 0 {
			t.Errorf("room %d unread = %d", room.ID, room.Unread)
		}
	}
}

func TestApplyIncomingOtherAuthorClosedRoom(t *testing.T) {
	var r Registry
	r.SetMine(threeRooms())

	r.ApplyIncoming(incoming(2, 5, "hola"), localUser, 0, false)

	mine := r.Mine()
	if mine[0].ID != 2 {
		t.Errorf("front room = %d, want 2", mine[0].ID)
	}
	if mine[0].Unread != 1 {
		t.Errorf("unread = %d, want 1", mine[0].Unread)
	}
	if mine[0].LastMessageText != "hola" {
		t.Errorf("preview = %q", mine[0].LastMessageText)
	}

	// Each further message adds exactly one.
	r.ApplyIncoming(incoming(2, 5, "sigues ahí?"), localUser, 0, false)
	if got := r.Mine()[0].Unread; got != 2 {
		t.Errorf("unread after second message = %d, want 2", got)
	}
}

func TestApplyIncomingOwnAuthorZeroes(t *testing.T) {
	var r Registry
	rooms := threeRooms()
	rooms[2].Unread = 4
	r.SetMine(rooms)

	r.ApplyIncoming(incoming(3, localUser, "yo"), localUser, 0, false)

	if got := r.Mine()[0]; got.ID != 3 || got.Unread != 0 {
		t.Errorf("front = %+v, want room 3 with 0 unread", got)
	}
}

func TestApplyIncomingOpenRoomStaysZero(t *testing.T) {
	var r Registry
	r.SetMine(threeRooms())

	r.ApplyIncoming(incoming(1, 5, "hola"), localUser, 1, true)

	if got := r.Mine()[0]; got.ID != 1 || got.Unread != 0 {
		t.Errorf("front = %+v, want room 1 with 0 unread", got)
	}
}

func TestApplyIncomingAttachmentPreview(t *testing.T) {
	var r Registry
	r.SetMine(threeRooms())

	msg := model.Message{ID: 1, RoomID: 1, AuthorID: 5, ImageURL: str("https://cdn/x.png"), State: model.StateSent}
	r.ApplyIncoming(msg, localUser, 0, false)

	if got := r.Mine()[0].LastMessageText; got != "📷 Foto" {
		t.Errorf("preview = %q, want media placeholder", got)
	}
}

func TestMarkOpenedKeepsOrdering(t *testing.T) {
	var r Registry
	rooms := threeRooms()
	rooms[1].Unread = 3
	r.SetMine(rooms)

	r.MarkOpened(2)

	mine := r.Mine()
	if mine[0].ID != 1 || mine[1].ID != 2 || mine[2].ID != 3 {
		t.Errorf("ordering changed: %v %v %v", mine[0].ID, mine[1].ID, mine[2].ID)
	}
	if mine[1].Unread != 0 {
		t.Errorf("unread = %d, want 0", mine[1].Unread)
	}
}

func TestSwitchingRoomsDoesNotTouchOthers(t *testing.T) {
	var r Registry
	rooms := threeRooms()
	rooms[0].Unread = 3 // room A
	r.SetMine(rooms)

	// Opening room B leaves A's counter alone.
	r.MarkOpened(2)
	if got := r.Mine()[0].Unread; got != 3 {
		t.Errorf("room A unread after opening B = %d, want 3", got)
	}

	// Opening A resets it.
	r.MarkOpened(1)
	if got := r.Mine()[0].Unread; got != 0 {
		t.Errorf("room A unread after opening A = %d, want 0", got)
	}
}

func TestPublicHidesRoomsAlreadyMine(t *testing.T) {
	var r Registry
	r.SetMine([]model.Room{{ID: 1, Name: "general"}})
	r.SetPublic([]model.Room{{ID: 1, Name: "general"}, {ID: 4, Name: "cine"}})

	pub := r.Public()
	if len(pub) != 1 || pub[0].ID != 4 {
		t.Errorf("Public() = %+v, want only room 4", pub)
	}
}
