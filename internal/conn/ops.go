package conn

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pcanos/charla/model"
)

// Typed wrappers over Request/Notify, one per backend op.

func (c *Client) MyRooms(ctx context.Context) ([]model.Room, error) {
	return requestList[model.Room](ctx, c, model.OpMyRooms, nil)
}

func (c *Client) PublicRooms(ctx context.Context) ([]model.Room, error) {
	return requestList[model.Room](ctx, c, model.OpPublicRooms, nil)
}

func (c *Client) Users(ctx context.Context) ([]model.UserEntry, error) {
	return requestList[model.UserEntry](ctx, c, model.OpUserList, nil)
}

// Join enters a room by name, creating it server-side when it does not
// exist, and returns the room descriptor the session is now in.
func (c *Client) Join(ctx context.Context, name string) (model.Room, error) {
	return requestOne[model.Room](ctx, c, model.OpJoinRoom, name)
}

// PrivateChat resolves the 1:1 room with another user, existing or new.
func (c *Client) PrivateChat(ctx context.Context, userID int64) (model.Room, error) {
	return requestOne[model.Room](ctx, c, model.OpPrivateChat, userID)
}

// History fetches the full ordered message history of a room.
func (c *Client) History(ctx context.Context, roomID int64) ([]model.Message, error) {
	return requestList[model.Message](ctx, c, model.OpHistory, roomID)
}

func (c *Client) SendText(text string) error {
	return c.Notify(model.OpSendMessage, model.SendPayload{Text: &text})
}

func (c *Client) SendImage(url string) error {
	return c.Notify(model.OpSendMessage, model.SendPayload{Text: nil, ImageURL: &url})
}

func (c *Client) MarkRead(roomID int64, messageIDs []int64) error {
	return c.Notify(model.OpMarkRead, model.MarkReadPayload{RoomID: roomID, MessageIDs: messageIDs})
}

func (c *Client) LeaveRoom() error {
	return c.Notify(model.OpLeaveRoom, nil)
}

func (c *Client) Typing() error {
	return c.Notify(model.OpTyping, nil)
}

func requestOne[T any](ctx context.Context, c *Client, op model.EventType, payload any) (T, error) {
	var out T
	raw, err := c.Request(ctx, op, payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s: decode ack: %w", op, err)
	}
	return out, nil
}

func requestList[T any](ctx context.Context, c *Client, op model.EventType, payload any) ([]T, error) {
	raw, err := c.Request(ctx, op, payload)
	if err != nil {
		return nil, err
	}
	var out []T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("%s: decode ack: %w", op, err)
		}
	}
	return out, nil
}
