package chat

import (
	"strings"

	"github.com/pcanos/charla/model"
)

// Feed owns the ordered message list for the currently open room and
// nothing else; switching rooms replaces the list wholesale.
type Feed struct {
	roomID int64
	open   bool
	msgs   []model.Message
}

// Reset clears the feed and points it at a new room, before the join and
// history round trips start.
func (f *Feed) Reset(roomID int64) {
	f.roomID = roomID
	f.open = true
	f.msgs = nil
}

// Close empties the feed when the user leaves for the lobby.
func (f *Feed) Close() {
	f.roomID = 0
	f.open = false
	f.msgs = nil
}

func (f *Feed) Open() bool {
	return f.open
}

func (f *Feed) RoomID() int64 {
	return f.roomID
}

func (f *Feed) Messages() []model.Message {
	return f.msgs
}

// ApplyHistory replaces the list with a history response, in server order.
// A response for a room the user has since navigated away from is stale and
// discarded; the report says whether it was applied.
func (f *Feed) ApplyHistory(roomID int64, msgs []model.Message) bool {
	if !f.open || roomID != f.roomID {
		return false
	}
	f.msgs = msgs
	return true
}

// Append adds one incoming message at the end, arrival order. Messages for
// any other room are not the feed's business.
func (f *Feed) Append(msg model.Message) bool {
	if !f.open || msg.RoomID != f.roomID {
		return false
	}
	f.msgs = append(f.msgs, msg)
	return true
}

// UpdateStates overwrites the delivery state of every listed message that
// is present in the feed.
func (f *Feed) UpdateStates(messageIDs []int64, newState string) {
	ids := make(map[int64]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		ids[id] = struct{}{}
	}
	for i := range f.msgs {
		if _, ok := ids[f.msgs[i].ID]; ok {
			f.msgs[i].State = newState
		}
	}
}

// OutgoingText trims a compose-box body and says whether it is worth
// sending at all.
func OutgoingText(body string) (string, bool) {
	trimmed := strings.TrimSpace(body)
	return trimmed, trimmed != ""
}
