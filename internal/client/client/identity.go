package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/crmclient/internal/client/models"
)

const (
	pathLogin    = "/api/auth/login/"
	pathRegister = "/api/auth/register/"
	pathUser     = "/api/auth/user/"
)

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if err := checkAuthResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, pathRegister, req, &resp); err != nil {
		return nil, err
	}
	if err := checkAuthResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, pathUser, nil, &u); err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("%w: user without id", ErrMalformedResponse)
	}
	return &u, nil
}

func checkAuthResponse(resp *models.AuthResponse) error {
	if resp.Token == "" || resp.User == nil {
		return fmt.Errorf("%w: missing token or user", ErrMalformedResponse)
	}
	return nil
}
