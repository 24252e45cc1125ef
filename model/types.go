package model

import "encoding/json"

// Message delivery states, as the backend spells them in the estado field.
const (
	StateSent      = "enviado"
	StateDelivered = "entregado"
	StateRead      = "leido"
)

// Session is the authenticated identity returned by POST /api/login.
type Session struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Room is one chat room entry as the backend reports it. For private 1:1
// rooms Name carries the other participant's name and SystemName the
// backend's internal routing name.
type Room struct {
	ID              int64  `json:"id"`
	Name            string `json:"nombre"`
	SystemName      string `json:"nombre_sistema,omitempty"`
	Unread          int    `json:"no_leidos,omitempty"`
	LastMessageAt   string `json:"ultimo_mensaje_fecha,omitempty"`
	LastMessageText string `json:"ultimo_mensaje_texto,omitempty"`
	LastMessageBy   int64  `json:"ultimo_mensaje_usuario_id,omitempty"`
}

// JoinName is the name to send with unirseASala: the system name when the
// room has one, the display name otherwise. Ad hoc rooms created by typed
// name only ever have a display name.
func (r Room) JoinName() string {
	if r.SystemName != "" {
		return r.SystemName
	}
	return r.Name
}

// Message is one chat message. Exactly one of Text and ImageURL is set.
type Message struct {
	ID         int64   `json:"id"`
	AuthorName string  `json:"usuario"`
	AuthorID   int64   `json:"usuario_id"`
	Text       *string `json:"texto"`
	ImageURL   *string `json:"imagen_url"`
	Timestamp  string  `json:"timestamp,omitempty"`
	State      string  `json:"estado"`
	RoomID     int64   `json:"sala_id"`
}

// UserEntry is one row of the global user list.
type UserEntry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Notification is an ephemeral toast shown in the conversation screen.
type Notification struct {
	ID   int64  `json:"id"`
	Text string `json:"texto"`
}

// EventType names an envelope on the wire, both server-pushed events and
// client-issued requests.
type EventType string

const (
	// Server-pushed events.
	EventAck          EventType = "ack"
	EventMessage      EventType = "receiveMessage"
	EventTyping       EventType = "alguienEscribe"
	EventUserList     EventType = "actualizarListaUsuarios"
	EventNotification EventType = "notificacion"
	EventStateUpdate  EventType = "actualizarEstados"

	// Client requests answered by an ack carrying the same correlation id.
	OpMyRooms     EventType = "solicitarMisSalas"
	OpPublicRooms EventType = "solicitarSalasPublicas"
	OpUserList    EventType = "solicitarListaUsuarios"
	OpJoinRoom    EventType = "unirseASala"
	OpPrivateChat EventType = "solicitarChatPrivado"
	OpHistory     EventType = "solicitarHistorial"

	// Fire-and-forget client notifications.
	OpSendMessage EventType = "sendMessage"
	OpMarkRead    EventType = "marcarComoLeido"
	OpLeaveRoom   EventType = "dejarSala"
	OpTyping      EventType = "escribiendo"
)

// Envelope is the wrapper for every websocket frame. ID is non-zero only on
// requests and their acks; Error is set on failed acks.
type Envelope struct {
	Type    EventType       `json:"type"`
	ID      uint64          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SendPayload is the sendMessage body. Text stays null for attachments,
// mirroring what the backend expects.
type SendPayload struct {
	Text     *string `json:"texto"`
	ImageURL *string `json:"imagen_url,omitempty"`
}

// MarkReadPayload is the marcarComoLeido body.
type MarkReadPayload struct {
	RoomID     int64   `json:"salaId"`
	MessageIDs []int64 `json:"messageIds"`
}

// StateUpdatePayload is the actualizarEstados event body.
type StateUpdatePayload struct {
	MessageIDs []int64 `json:"messageIds"`
	NewState   string  `json:"nuevoEstado"`
}
