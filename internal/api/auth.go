package api

import (
	"context"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/auth/login", credentialsRequest{Email: email, Password: password}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Signup creates an account and returns its first session.
func (c *Client) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/auth/signup", credentialsRequest{Email: email, Password: password, Name: name}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
}

// GoogleLogin exchanges a Google OAuth credential for a session.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/auth/google", googleLoginRequest{Credential: credential}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type emailRequest struct {
	Email string `json:"email"`
}

// ForgotPassword starts a password reset for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/forgot-password", emailRequest{Email: email}, nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword completes a password reset using the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.post(ctx, "/api/auth/reset-password", resetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile changes the display name of the authenticated user.
func (c *Client) UpdateProfile(ctx context.Context, name string) (*User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := c.put(ctx, "/api/auth/profile", updateProfileRequest{Name: name}, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.post(ctx, "/api/auth/change-password", changePasswordRequest{CurrentPassword: current, NewPassword: next}, nil)
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
