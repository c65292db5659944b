package api

import (
	"context"
	"net/http"
	"time"

	"smartcampus/pkg/model"
)

// CreateBookingRequest is the payload for a new reservation.
type CreateBookingRequest struct {
	RoomID       string    `json:"roomId"`
	ResourceType string    `json:"resourceType"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Purpose      string    `json:"purpose"`
}

// MyBookings lists the caller's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]model.Booking, error) {
	return c.fetchBookings(ctx, "/booking/my-bookings")
}

// AllBookings lists every booking (admin only).
func (c *Client) AllBookings(ctx context.Context) ([]model.Booking, error) {
	return c.fetchBookings(ctx, "/booking/all")
}

func (c *Client) fetchBookings(ctx context.Context, path string) ([]model.Booking, error) {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	if err := decodeMessage(raw, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking requests a new reservation; it starts out pending.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	raw, err := c.do(ctx, http.MethodPost, "/booking", req)
	if err != nil {
		return nil, err
	}
	var created model.Booking
	if err := decodeMessage(raw, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBookingStatus approves or rejects a pending booking (admin only).
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) error {
	body := struct {
		Status model.BookingStatus `json:"status"`
	}{Status: status}

	_, err := c.do(ctx, http.MethodPatch, "/booking/"+id+"/status", body)
	return err
}

// CancelBooking cancels one of the caller's own bookings.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	// Note the divergent path prefix; the backend exposes cancel under
	// /bookings while everything else lives under /booking.
	_, err := c.do(ctx, http.MethodPatch, "/bookings/"+id+"/cancel", nil)
	return err
}

// AdminDashboard fetches campus-wide aggregates (admin only).
func (c *Client) AdminDashboard(ctx context.Context) (*model.AdminStats, error) {
	raw, err := c.do(ctx, http.MethodGet, "/booking/dashboard", nil)
	if err != nil {
		return nil, err
	}
	var stats model.AdminStats
	if err := decodeMessage(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// MyStats fetches the caller's personal booking aggregates.
func (c *Client) MyStats(ctx context.Context) (*model.UserStats, error) {
	raw, err := c.do(ctx, http.MethodGet, "/booking/my-stats", nil)
	if err != nil {
		return nil, err
	}
	var stats model.UserStats
	if err := decodeMessage(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
