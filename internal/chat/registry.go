package chat

import "github.com/pcanos/charla/model"

// Registry holds the two room collections: the rooms the user belongs to,
// most-recently-active first, and the publicly joinable candidates.
type Registry struct {
	mine   []model.Room
	public []model.Room
}

func (r *Registry) SetMine(rooms []model.Room) {
	r.mine = rooms
}

func (r *Registry) SetPublic(rooms []model.Room) {
	r.public = rooms
}

func (r *Registry) Mine() []model.Room {
	return r.mine
}

// Public returns the joinable rooms the user is not already in. A room in
// both collections is shown under "my rooms" only.
func (r *Registry) Public() []model.Room {
	out := make([]model.Room, 0, len(r.public))
	for _, p := range r.public {
		if r.find(p.ID) == -1 {
			out = append(out, p)
		}
	}
	return out
}

// Rooms are matched by id, never by display name: a private room's display
// name is the other user's name and is not unique.
func (r *Registry) find(roomID int64) int {
	for i := range r.mine {
		if r.mine[i].ID == roomID {
			return i
		}
	}
	return -1
}

// ApplyIncoming reconciles one incoming message against the room list. A
// message for an unknown room is dropped; the list refresh will pick the
// room up. Known rooms get their unread counter and last-message preview
// updated and move to the front.
func (r *Registry) ApplyIncoming(msg model.Message, localUserID int64, openRoomID int64, roomOpen bool) {
	i := r.find(msg.RoomID)
	if i == -1 {
		return
	}
	room := r.mine[i]

	mine := msg.AuthorID == localUserID
	inRoom := roomOpen && openRoomID == msg.RoomID
	switch {
	case mine, inRoom:
		room.Unread = 0
	default:
		room.Unread++
	}

	room.LastMessageText = previewText(msg)
	room.LastMessageAt = msg.Timestamp
	room.LastMessageBy = msg.AuthorID

	r.mine = append(r.mine[:i], r.mine[i+1:]...)
	r.mine = append([]model.Room{room}, r.mine...)
}

// MarkOpened zeroes a room's unread counter without touching the ordering.
func (r *Registry) MarkOpened(roomID int64) {
	if i := r.find(roomID); i != -1 {
		r.mine[i].Unread = 0
	}
}

// previewText is the lobby's one-line snapshot of a message: a media
// placeholder for attachments, the body otherwise.
func previewText(msg model.Message) string {
	if msg.ImageURL != nil && *msg.ImageURL != "" {
		return "📷 Foto"
	}
	if msg.Text != nil {
		return *msg.Text
	}
	return ""
}
