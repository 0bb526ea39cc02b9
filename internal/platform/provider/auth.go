package provider

import (
	"context"
	"net/http"
	"time"
)

// AuthUser is the provider's authenticated user record.
type AuthUser struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	EmailConfirmedAt *string   `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Token is an issued session: access + refresh token pair with the user
// it belongs to.
type Token struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// SignUpResult distinguishes immediate session issuance from email
// confirmation pending (token nil).
type SignUpResult struct {
	User  AuthUser
	Token *Token
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}

// SignInWithPassword exchanges credentials for a token pair.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Token, error) {
	var token Token
	err := c.request(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", nil,
		passwordGrant{Email: email, Password: password}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// signUpResponse covers both shapes the signup endpoint produces: a bare
// user when confirmation is required, a full token otherwise.
type signUpResponse struct {
	Token
	// bare-user shape
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SignUp registers a new identity.
func (c *Client) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	var resp signUpResponse
	err := c.request(ctx, http.MethodPost, "/auth/v1/signup", "", nil,
		passwordGrant{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken != "" {
		token := resp.Token
		return &SignUpResult{User: token.User, Token: &token}, nil
	}
	return &SignUpResult{User: AuthUser{ID: resp.ID, Email: resp.Email, CreatedAt: resp.CreatedAt}}, nil
}

// RefreshToken rotates the token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	var token Token
	err := c.request(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", nil,
		refreshGrant{RefreshToken: refreshToken}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.request(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil, nil)
}

// GetUser fetches the identity behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	var user AuthUser
	if err := c.request(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
