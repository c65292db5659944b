package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartcampus/pkg/api"
	"smartcampus/pkg/model"
)

func TestLoginAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("request is missing X-Request-ID")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken":"T","user":{"_id":"u1","fullName":"Root","email":"root@campus.edu","role":"admin"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	res, err := c.Login(context.Background(), "root@campus.edu", "good")
	if err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}
	if res.Token != "T" || res.User.Role != model.RoleAdmin {
		t.Errorf("Login = token %q role %v, want T/admin", res.Token, res.User.Role)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	_, err := c.Login(context.Background(), "a@b.com", "bad")
	if err == nil {
		t.Fatal("Login: expected error")
	}
	var ae *api.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error type = %T, want *api.Error", err)
	}
	if ae.Message != "Invalid credentials" || !ae.Unauthorized() {
		t.Errorf("got %+v, want 401 with backend message", ae)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"user":{"_id":"u1","fullName":"Root","email":"root@campus.edu","role":"admin"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	c.SetToken("tok-123")
	if _, err := c.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser: unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestRoomsUnderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rooms" {
			t.Errorf("path = %s, want /rooms", r.URL.Path)
		}
		w.Write([]byte(`{"message":[{"_id":"r1","name":"Physics Lab","type":"lab","capacity":24,"location":"Block C","features":["projector"]}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	rooms, err := api.New(srv.URL).ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms: unexpected error: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Type != model.RoomTypeLab {
		t.Errorf("rooms = %+v", rooms)
	}
}

func TestBookingPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"message":{}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	ctx := context.Background()
	if err := c.UpdateBookingStatus(ctx, "b9", model.BookingApproved); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if err := c.CancelBooking(ctx, "b9"); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	want := []string{"PATCH /booking/b9/status", "PATCH /bookings/b9/cancel"}
	for i, w := range want {
		if i >= len(paths) || paths[i] != w {
			t.Errorf("request %d = %v, want %q", i, paths, w)
		}
	}
}

func TestCreateBookingPayload(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.Write([]byte(`{"message":{"_id":"b1","resourceType":"Room","status":"pending"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	created, err := api.New(srv.URL).CreateBooking(context.Background(), api.CreateBookingRequest{
		RoomID:       "r1",
		ResourceType: "Room",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		Purpose:      "Study group",
	})
	if err != nil {
		t.Fatalf("CreateBooking: unexpected error: %v", err)
	}
	if created.Status != model.BookingPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
}

func TestUploadAvatarMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("avatar")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close() //nolint:errcheck
		if hdr.Filename != "me.png" {
			t.Errorf("filename = %q, want me.png", hdr.Filename)
		}
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	err := api.New(srv.URL).UploadAvatar(context.Background(), "me.png", strings.NewReader("pngbytes"))
	if err != nil {
		t.Fatalf("UploadAvatar: unexpected error: %v", err)
	}
}

func TestDashboardStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/booking/dashboard":
			w.Write([]byte(`{"message":{"overview":{"total":12,"today":3},"statusSummary":{"pending":4,"approved":6},"topRooms":[{"roomName":"Main Hall","location":"Block A","totalBookings":9}]}}`)) //nolint:errcheck
		case "/booking/my-stats":
			w.Write([]byte(`{"message":{"total":5,"pending":1,"approved":2,"rejected":1,"cancelled":1}}`)) //nolint:errcheck
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	admin, err := c.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("AdminDashboard: %v", err)
	}
	if admin.Overview.Total != 12 || len(admin.TopRooms) != 1 {
		t.Errorf("admin stats = %+v", admin)
	}

	mine, err := c.MyStats(context.Background())
	if err != nil {
		t.Fatalf("MyStats: %v", err)
	}
	if mine.Declined() != 2 {
		t.Errorf("Declined() = %d, want 2", mine.Declined())
	}
}
