package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/pcanos/charla/internal/chat"
	"github.com/pcanos/charla/internal/conn"
	"github.com/pcanos/charla/internal/httpapi"
	"github.com/pcanos/charla/model"
)

const requestTimeout = 15 * time.Second

type (
	errMsg error

	sessionMsg struct {
		sess model.Session
		err  error
	}
	registeredMsg struct{ err error }
	connectedMsg  struct {
		client *conn.Client
		err    error
	}
	connClosedMsg  struct{}
	serverEventMsg model.Envelope

	myRoomsMsg struct {
		rooms []model.Room
		err   error
	}
	publicRoomsMsg struct {
		rooms []model.Room
		err   error
	}
	userListMsg struct {
		users []model.UserEntry
		err   error
	}

	joinedMsg struct {
		room model.Room
		err  error
	}
	historyMsg struct {
		roomID int64
		msgs   []model.Message
		err    error
	}
	uploadedMsg struct {
		url string
		err error
	}

	typingExpiredMsg int
	toastExpiredMsg  int64
)

func loginCmd(api *httpapi.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sess, err := api.Login(ctx, username, password)
		return sessionMsg{sess: sess, err: err}
	}
}

func registerCmd(api *httpapi.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return registeredMsg{err: api.Register(ctx, username, password)}
	}
}

func connectCmd(serverURL, token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		client, err := conn.Dial(ctx, serverURL, token)
		return connectedMsg{client: client, err: err}
	}
}

// waitForEvent pumps the next server event into the program, re-armed from
// Update after each delivery.
func waitForEvent(c *conn.Client) tea.Cmd {
	return func() tea.Msg {
		env, ok := <-c.Events()
		if !ok {
			return connClosedMsg{}
		}
		return serverEventMsg(env)
	}
}

// The three bootstrap requests, fired together on connect and completed
// independently.

func myRoomsCmd(c *conn.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rooms, err := c.MyRooms(ctx)
		return myRoomsMsg{rooms: rooms, err: err}
	}
}

func publicRoomsCmd(c *conn.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		rooms, err := c.PublicRooms(ctx)
		return publicRoomsMsg{rooms: rooms, err: err}
	}
}

func userListCmd(c *conn.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		users, err := c.Users(ctx)
		return userListMsg{users: users, err: err}
	}
}

// joinRoomCmd joins by system name. When the room came from a list entry we
// keep that entry for display, not the backend's descriptor: the entry
// carries the name the user clicked (the other participant's, for private
// rooms). Ad hoc rooms typed by name have no entry yet, so the backend's
// descriptor wins.
func joinRoomCmd(c *conn.Client, room model.Room) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		joined, err := c.Join(ctx, room.JoinName())
		if err != nil {
			return joinedMsg{err: err}
		}
		if room.ID != 0 {
			joined = room
		}
		return joinedMsg{room: joined}
	}
}

func privateChatCmd(c *conn.Client, userID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		room, err := c.PrivateChat(ctx, userID)
		return joinedMsg{room: room, err: err}
	}
}

func historyCmd(c *conn.Client, roomID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msgs, err := c.History(ctx, roomID)
		return historyMsg{roomID: roomID, msgs: msgs, err: err}
	}
}

func ackCmd(c *conn.Client, roomID int64, msgs []model.Message, localUserID int64) tea.Cmd {
	return func() tea.Msg {
		if err := chat.Acknowledge(c, roomID, msgs, localUserID); err != nil {
			log.Warn().Err(err).Int64("room", roomID).Msg("mark read failed")
		}
		return nil
	}
}

func sendTextCmd(c *conn.Client, text string) tea.Cmd {
	return func() tea.Msg {
		if err := c.SendText(text); err != nil {
			return errMsg(err)
		}
		return nil
	}
}

func sendImageCmd(c *conn.Client, url string) tea.Cmd {
	return func() tea.Msg {
		if err := c.SendImage(url); err != nil {
			return errMsg(err)
		}
		return nil
	}
}

func uploadCmd(api *httpapi.Client, token, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		url, err := api.Upload(ctx, token, path)
		return uploadedMsg{url: url, err: err}
	}
}

func typingExpiry(gen int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return typingExpiredMsg(gen)
	})
}

func toastExpiry(id int64) tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return toastExpiredMsg(id)
	})
}
