package api

import (
	"context"
	"io"
	"net/http"

	"smartcampus/pkg/model"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a bearer token and the account record.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	raw, err := c.do(ctx, http.MethodPost, "/login", body)
	if err != nil {
		return nil, err
	}
	return decodeLogin(raw)
}

// CurrentUser revalidates the installed token and returns the account it
// belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/me", nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

// Register creates a new account. It does not authenticate the caller.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/register", req)
	return err
}

// UpdateAccount changes name and/or email and returns the updated record.
func (c *Client) UpdateAccount(ctx context.Context, fullName, email string) (*model.User, error) {
	body := struct {
		FullName string `json:"fullName,omitempty"`
		Email    string `json:"email,omitempty"`
	}{FullName: fullName, Email: email}

	raw, err := c.do(ctx, http.MethodPatch, "/update-account", body)
	if err != nil {
		return nil, err
	}
	// This endpoint returns the updated user under "message".
	var wu wireUser
	if err := decodeMessage(raw, &wu); err != nil {
		return nil, err
	}
	return wu.normalized(), nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}{OldPassword: oldPassword, NewPassword: newPassword}

	_, err := c.do(ctx, http.MethodPatch, "/change-password", body)
	return err
}

// DeleteAccount removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/delete-account", nil)
	return err
}

// ForgotPassword requests a reset mail for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	_, err := c.do(ctx, http.MethodPost, "/forgot-password", body)
	return err
}

// ResetPassword applies a new password using a mailed reset token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := struct {
		Password string `json:"password"`
	}{Password: password}

	_, err := c.do(ctx, http.MethodPost, "/reset-password/"+resetToken, body)
	return err
}

// UploadAvatar replaces the profile picture.
func (c *Client) UploadAvatar(ctx context.Context, filename string, file io.Reader) error {
	_, err := c.doMultipart(ctx, http.MethodPatch, "/update-avatar", "avatar", filename, file)
	return err
}

// RemoveAvatar clears the profile picture.
func (c *Client) RemoveAvatar(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPatch, "/remove-avatar", nil)
	return err
}
