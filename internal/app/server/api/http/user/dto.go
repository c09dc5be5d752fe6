package user

import (
	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/model"
)

type loginInput struct {
	Body model.LoginRequest
}

type registerInput struct {
	Body model.RegisterRequest
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type refreshInput struct {
	Body RefreshRequest
}

type authOutput struct {
	Body respond.Envelope[model.AuthResult]
}

type emptyInput struct{}

type emptyOutput struct {
	Body respond.Envelope[*respond.Empty]
}

type userOutput struct {
	Body model.User
}

type updateMeInput struct {
	Body model.UpdateProfileRequest
}

type preferencesInput struct {
	Body model.Preferences
}

type preferencesOutput struct {
	Body respond.Envelope[model.Preferences]
}
