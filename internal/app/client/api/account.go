package api

import (
	"context"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/model"
)

// AccountAPI — /api/account, все ответы в конверте
type AccountAPI struct {
	ep *transport.Endpoint
}

func NewAccountAPI(t *transport.Client, s session.Session) *AccountAPI {
	return &AccountAPI{ep: t.Bind(s, "/api/account")}
}

func (a *AccountAPI) GetAccount(ctx context.Context) (*model.Account, error) {
	var acc model.Account
	if err := a.ep.Get(ctx, "", nil, transport.Envelope, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (a *AccountAPI) UpdateAccount(ctx context.Context, req model.UpdateAccountRequest) (*model.Account, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var acc model.Account
	if err := a.ep.Patch(ctx, "", req, transport.Envelope, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

type changeEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (a *AccountAPI) ChangeEmail(ctx context.Context, email, password string) error {
	req := changeEmailRequest{Email: email, Password: password}
	if err := validate(req); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/email", req, transport.Envelope, nil)
}

type changePasswordRequest struct {
	Current string `json:"currentPassword" validate:"required"`
	New     string `json:"newPassword" validate:"required,min=8,nefield=Current"`
}

func (a *AccountAPI) ChangePassword(ctx context.Context, current, next string) error {
	req := changePasswordRequest{Current: current, New: next}
	if err := validate(req); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/password", req, transport.Envelope, nil)
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

func (a *AccountAPI) DeleteAccount(ctx context.Context, password string) error {
	req := deleteAccountRequest{Password: password}
	if err := validate(req); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/delete", req, transport.Envelope, nil)
}

// ExportData ставит в очередь выгрузку данных аккаунта
func (a *AccountAPI) ExportData(ctx context.Context) (*model.ExportJob, error) {
	var job model.ExportJob
	if err := a.ep.Post(ctx, "/export", nil, transport.Envelope, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
