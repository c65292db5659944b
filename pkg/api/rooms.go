package api

import (
	"context"
	"net/http"

	"smartcampus/pkg/model"
)

// ListRooms fetches all rooms.
func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	raw, err := c.do(ctx, http.MethodGet, "/rooms", nil)
	if err != nil {
		return nil, err
	}
	var rooms []model.Room
	if err := decodeMessage(raw, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom registers a new room (admin only) and returns the created
// record.
func (c *Client) CreateRoom(ctx context.Context, room model.Room) (*model.Room, error) {
	body := struct {
		Name     string   `json:"name"`
		Type     string   `json:"type"`
		Capacity int      `json:"capacity"`
		Location string   `json:"location"`
		Features []string `json:"features"`
	}{
		Name:     room.Name,
		Type:     room.Type,
		Capacity: room.Capacity,
		Location: room.Location,
		Features: room.Features,
	}

	raw, err := c.do(ctx, http.MethodPost, "/rooms", body)
	if err != nil {
		return nil, err
	}
	var created model.Room
	if err := decodeMessage(raw, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
