package chat

import "github.com/pcanos/charla/model"

// Toasts collects the ephemeral notifications shown over the conversation.
// Each one lives until its own expiry fires; the timers belong to the UI.
type Toasts struct {
	nextID int64
	items  []model.Notification
}

// Add appends a toast and returns the id its expiry timer must carry.
func (t *Toasts) Add(text string) int64 {
	t.nextID++
	t.items = append(t.items, model.Notification{ID: t.nextID, Text: text})
	return t.nextID
}

// Expire drops one toast; expiring an already-cleared id is a no-op.
func (t *Toasts) Expire(id int64) {
	for i := range t.items {
		if t.items[i].ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

// Clear drops everything, as happens when a room is opened.
func (t *Toasts) Clear() {
	t.items = nil
}

func (t *Toasts) Items() []model.Notification {
	return t.items
}
