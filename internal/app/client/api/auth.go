package api

import (
	"context"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/model"
)

// AuthAPI — /api/auth, ответы в конверте
type AuthAPI struct {
	ep *transport.Endpoint
}

func NewAuthAPI(t *transport.Client, s session.Session) *AuthAPI {
	return &AuthAPI{ep: t.Bind(s, "/api/auth")}
}

func (a *AuthAPI) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var res model.AuthResult
	if err := a.ep.Post(ctx, "/login", req, transport.Envelope, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *AuthAPI) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var res model.AuthResult
	if err := a.ep.Post(ctx, "/register", req, transport.Envelope, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh обменивает refresh-токен на новую пару
func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	req := refreshRequest{RefreshToken: refreshToken}
	if err := validate(req); err != nil {
		return nil, err
	}
	var res model.AuthResult
	if err := a.ep.Post(ctx, "/refresh", req, transport.Envelope, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.ep.Post(ctx, "/logout", nil, transport.Envelope, nil)
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (a *AuthAPI) RequestPasswordReset(ctx context.Context, email string) error {
	req := emailRequest{Email: email}
	if err := validate(req); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/password-reset", req, transport.Envelope, nil)
}

type verifyRequest struct {
	Code string `json:"code" validate:"required"`
}

func (a *AuthAPI) VerifyEmail(ctx context.Context, code string) error {
	req := verifyRequest{Code: code}
	if err := validate(req); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/verify-email", req, transport.Envelope, nil)
}
