package chat

import "github.com/pcanos/charla/model"

// Acker issues the outbound "mark read" request. internal/conn satisfies it.
type Acker interface {
	MarkRead(roomID int64, messageIDs []int64) error
}

// UnreadIDs picks the messages that still owe the server a read receipt:
// authored by someone else and not already read.
func UnreadIDs(msgs []model.Message, localUserID int64) []int64 {
	var ids []int64
	for _, m := range msgs {
		if m.AuthorID != localUserID && m.State != model.StateRead {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Acknowledge sends one batched receipt for whatever is unread. An empty
// batch sends nothing.
func Acknowledge(a Acker, roomID int64, msgs []model.Message, localUserID int64) error {
	ids := UnreadIDs(msgs, localUserID)
	if len(ids) == 0 {
		return nil
	}
	return a.MarkRead(roomID, ids)
}
