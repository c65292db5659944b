package api

import (
	"encoding/json"
	"fmt"

	"smartcampus/pkg/model"
)

// envelope covers every enclosing shape the backend has been observed to
// use: flat top-level fields, payloads under "data", payloads under
// "message". Fields that are absent stay nil.
type envelope struct {
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user"`
	Data        json.RawMessage `json:"data"`
	Message     json.RawMessage `json:"message"`
}

// wireUser tolerates both "_id" and "id" as the identifier key; the auth
// endpoints have been seen with either.
type wireUser struct {
	model.User
	AltID string `json:"id"`
}

func (w wireUser) normalized() *model.User {
	u := w.User
	if u.ID == "" {
		u.ID = w.AltID
	}
	return &u
}

// decodeUser resolves a current-user response, accepting {user:{...}} and
// {data:{user:{...}}}.
func decodeUser(raw []byte) (*model.User, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: decode user response: %w", err)
	}

	userRaw := env.User
	if userRaw == nil && env.Data != nil {
		var inner envelope
		if err := json.Unmarshal(env.Data, &inner); err != nil {
			return nil, fmt.Errorf("api: decode user response: %w", err)
		}
		userRaw = inner.User
	}
	if userRaw == nil {
		return nil, fmt.Errorf("api: decode user response: %w", ErrMalformedPayload)
	}

	var wu wireUser
	if err := json.Unmarshal(userRaw, &wu); err != nil {
		return nil, fmt.Errorf("api: decode user record: %w", err)
	}
	return wu.normalized(), nil
}

// LoginResult is the canonical outcome of a successful login.
type LoginResult struct {
	Token string
	User  *model.User
}

// decodeLogin resolves a login response. Canonical shape is flat
// {accessToken, user}; the nested {data:{accessToken, user}} variant is
// tolerated. A 2xx response without a token is a hard failure; downstream
// code treats token presence as the definition of a usable session.
func decodeLogin(raw []byte) (*LoginResult, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: decode login response: %w", err)
	}

	token := env.AccessToken
	userRaw := env.User
	if token == "" && env.Data != nil {
		var inner envelope
		if err := json.Unmarshal(env.Data, &inner); err != nil {
			return nil, fmt.Errorf("api: decode login response: %w", err)
		}
		token = inner.AccessToken
		if userRaw == nil {
			userRaw = inner.User
		}
	}
	if token == "" {
		return nil, ErrMissingToken
	}
	if userRaw == nil {
		return nil, fmt.Errorf("api: decode login response: %w", ErrMalformedPayload)
	}

	var wu wireUser
	if err := json.Unmarshal(userRaw, &wu); err != nil {
		return nil, fmt.Errorf("api: decode login user: %w", err)
	}
	return &LoginResult{Token: token, User: wu.normalized()}, nil
}

// decodeMessage unmarshals the payload the backend parks under "message"
// (rooms, bookings, dashboard stats).
func decodeMessage(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	if env.Message == nil {
		return fmt.Errorf("api: decode response: %w", ErrMalformedPayload)
	}
	if err := json.Unmarshal(env.Message, out); err != nil {
		return fmt.Errorf("api: decode payload: %w", err)
	}
	return nil
}
