package ui

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/pcanos/charla/internal/chat"
	"github.com/pcanos/charla/internal/config"
	"github.com/pcanos/charla/internal/conn"
	"github.com/pcanos/charla/internal/httpapi"
	"github.com/pcanos/charla/internal/session"
	"github.com/pcanos/charla/model"
)

// The three mutually exclusive screens, driven by session-present and
// room-open.
type screen int

const (
	screenLogin screen = iota
	screenLobby
	screenChat
)

const sidebarWidth = 22

// Model is the whole client state. Every mutation happens inside Update;
// everything asynchronous comes back as a message.
type Model struct {
	cfg   config.Config
	store *session.Store
	api   *httpapi.Client

	conn *conn.Client
	sess model.Session
	scr  screen

	width, height int
	ready         bool

	// login screen
	username    textinput.Model
	password    textinput.Model
	loginFocus  int
	registering bool
	busy        bool
	status      string

	// lobby
	newRoom  textinput.Model
	registry chat.Registry
	users    []model.UserEntry
	cursor   int

	// conversation
	room           model.Room
	feed           chat.Feed
	tracker        chat.Tracker
	toasts         chat.Toasts
	compose        textinput.Model
	viewport       viewport.Model
	uploading      bool
	lastTypingSent time.Time

	err error
}

func New(cfg config.Config, store *session.Store, api *httpapi.Client) Model {
	username := textinput.New()
	username.Placeholder = "Nombre de usuario"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Contraseña"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	newRoom := textinput.New()
	newRoom.Placeholder = "Inicia o crea una nueva sala..."
	newRoom.CharLimit = 128

	compose := textinput.New()
	compose.Placeholder = "Escribe tu mensaje..."
	compose.CharLimit = 1024

	return Model{
		cfg:      cfg,
		store:    store,
		api:      api,
		scr:      screenLogin,
		username: username,
		password: password,
		newRoom:  newRoom,
		compose:  compose,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpWidth := msg.Width - sidebarWidth
		vpHeight := msg.Height - chatChromeHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}
		m.refreshFeedView()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.teardown()
			return m, tea.Quit
		}

	case sessionMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if err := m.store.SetSession(msg.sess); err != nil {
			log.Warn().Err(err).Msg("persisting session failed")
		}
		m.sess = msg.sess
		m.status = "Conectando..."
		return m, connectCmd(m.cfg.ServerURL, msg.sess.Token)

	case registeredMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.registering = false
		m.status = "¡Registro exitoso! Ahora inicia sesión."
		return m, nil

	case connectedMsg:
		if msg.err != nil {
			// The session is kept; the user decides whether to retry or
			// log in again.
			m.status = msg.err.Error()
			return m, nil
		}
		// Replacing the connection tears down any prior one first.
		if m.conn != nil {
			m.conn.Close()
		}
		m.conn = msg.client
		m.scr = screenLobby
		m.status = ""
		m.password.SetValue("")
		m.newRoom.Focus()
		return m, tea.Batch(
			myRoomsCmd(m.conn),
			publicRoomsCmd(m.conn),
			userListCmd(m.conn),
			waitForEvent(m.conn),
		)

	case connClosedMsg:
		if m.conn == nil {
			return m, nil
		}
		log.Warn().Msg("connection lost")
		m.conn = nil
		m.feed.Close()
		m.scr = screenLogin
		m.username.Focus()
		m.status = "Conexión perdida. Inicia sesión de nuevo."
		return m, nil

	case myRoomsMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("my-rooms request failed")
			return m, nil
		}
		m.registry.SetMine(msg.rooms)
		return m, nil

	case publicRoomsMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("public-rooms request failed")
			return m, nil
		}
		m.registry.SetPublic(msg.rooms)
		return m, nil

	case userListMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("user-list request failed")
			return m, nil
		}
		m.users = msg.users
		return m, nil

	case joinedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if m.conn == nil {
			// The connection died while the join was in flight; the ack
			// is stale.
			log.Debug().Int64("room", msg.room.ID).Msg("discarding join ack after teardown")
			return m, nil
		}
		m.room = msg.room
		m.feed.Reset(msg.room.ID)
		m.toasts.Clear()
		m.registry.MarkOpened(msg.room.ID)
		m.scr = screenChat
		m.compose.Focus()
		m.newRoom.Blur()
		m.refreshFeedView()
		return m, historyCmd(m.conn, msg.room.ID)

	case historyMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Int64("room", msg.roomID).Msg("history request failed")
			return m, nil
		}
		if !m.feed.ApplyHistory(msg.roomID, msg.msgs) {
			log.Debug().Int64("room", msg.roomID).Msg("discarding stale history")
			return m, nil
		}
		m.refreshFeedView()
		return m, ackCmd(m.conn, msg.roomID, msg.msgs, m.sess.UserID)

	case serverEventMsg:
		return m.handleServerEvent(model.Envelope(msg))

	case uploadedMsg:
		m.uploading = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("upload failed")
			id := m.toasts.Add("Error al subir la imagen.")
			return m, toastExpiry(id)
		}
		if m.conn == nil || !m.feed.Open() {
			// Logout or a room switch does not abort uploads, it only
			// ignores their result.
			log.Debug().Str("url", msg.url).Msg("discarding upload result after teardown")
			return m, nil
		}
		return m, sendImageCmd(m.conn, msg.url)

	case typingExpiredMsg:
		m.tracker.ExpireTyping(int(msg))
		return m, nil

	case toastExpiredMsg:
		m.toasts.Expire(int64(msg))
		return m, nil

	case errMsg:
		m.err = msg
		log.Error().Err(msg).Msg("command failed")
		return m, nil
	}

	switch m.scr {
	case screenLogin:
		return m.updateLogin(msg)
	case screenLobby:
		return m.updateLobby(msg)
	default:
		return m.updateChat(msg)
	}
}

// handleServerEvent applies one inbound event and always re-arms the pump.
func (m Model) handleServerEvent(env model.Envelope) (tea.Model, tea.Cmd) {
	rearm := waitForEvent(m.conn)

	switch env.Type {
	case model.EventMessage:
		var msg model.Message
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			log.Warn().Err(err).Msg("malformed receiveMessage payload")
			return m, rearm
		}
		var cmds []tea.Cmd
		cmds = append(cmds, rearm)
		if m.feed.Append(msg) {
			m.refreshFeedView()
			if msg.AuthorID != m.sess.UserID {
				cmds = append(cmds, ackCmd(m.conn, m.feed.RoomID(), []model.Message{msg}, m.sess.UserID))
			}
		}
		m.registry.ApplyIncoming(msg, m.sess.UserID, m.feed.RoomID(), m.feed.Open())
		return m, tea.Batch(cmds...)

	case model.EventTyping:
		var username string
		if err := json.Unmarshal(env.Payload, &username); err != nil {
			return m, rearm
		}
		gen := m.tracker.SetTyping(username)
		return m, tea.Batch(rearm, typingExpiry(gen))

	case model.EventUserList:
		var list []string
		if err := json.Unmarshal(env.Payload, &list); err != nil {
			return m, rearm
		}
		m.tracker.SetUsers(list)
		return m, rearm

	case model.EventNotification:
		var text string
		if err := json.Unmarshal(env.Payload, &text); err != nil {
			return m, rearm
		}
		id := m.toasts.Add(text)
		return m, tea.Batch(rearm, toastExpiry(id))

	case model.EventStateUpdate:
		var p model.StateUpdatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return m, rearm
		}
		m.feed.UpdateStates(p.MessageIDs, p.NewState)
		m.refreshFeedView()
		return m, rearm
	}

	log.Debug().Str("type", string(env.Type)).Msg("ignoring unknown event")
	return m, rearm
}

// teardown closes whatever connection exists; safe when there is none.
func (m *Model) teardown() {
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
}

// logout tears down unconditionally and returns to login.
func (m *Model) logout() {
	m.teardown()
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("clearing session failed")
	}
	m.sess = model.Session{}
	m.feed.Close()
	m.scr = screenLogin
	m.username.Focus()
	m.status = ""
}

func (m Model) View() string {
	switch m.scr {
	case screenLogin:
		return m.viewLogin()
	case screenLobby:
		return m.viewLobby()
	default:
		return m.viewChat()
	}
}
