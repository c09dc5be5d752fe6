package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api/http/middleware/auth"
	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/app/server/token"
	"pressroom/internal/model"
)

// Store — пользователи и их настройки
type Store interface {
	CreateUser(email, username, password string, role model.Role) (model.User, error)
	Authenticate(email, password string) (model.User, error)
	User(id string) (model.User, error)
	UpdateUser(id string, req model.UpdateProfileRequest) (model.User, error)
	Preferences(userID string) model.Preferences
	SetPreferences(userID string, p model.Preferences) model.Preferences
}

// Tokens — выпуск и обмен токенов
type Tokens interface {
	Issue(userID, role string) (token.Pair, error)
	Refresh(raw string) (token.Pair, error)
}

type Handler struct {
	store   Store
	tokens  Tokens
	log     *slog.Logger
	public  huma.Middlewares
	private huma.Middlewares
}

func NewHandler(store Store, tokens Tokens, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		store:   store,
		tokens:  tokens,
		log:     log.With(slog.String("component", "user_handler")),
		public:  public,
		private: private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.refreshOp(), h.refresh)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
	huma.Register(api, h.updateMeOp(), h.updateMe)
	huma.Register(api, h.preferencesOp(), h.preferences)
	huma.Register(api, h.updatePreferencesOp(), h.updatePreferences)
}

func (h *Handler) issue(u model.User) (*authOutput, error) {
	pair, err := h.tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		h.log.Error("issue token", slog.String("error", err.Error()))
		return nil, respond.FromDomain(err)
	}
	return &authOutput{Body: respond.OK(model.AuthResult{
		Token:        pair.Access,
		RefreshToken: pair.Refresh,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
		User:         &u,
	})}, nil
}

func (h *Handler) login(_ context.Context, input *loginInput) (*authOutput, error) {
	if err := respond.Check(input.Body); err != nil {
		return nil, err
	}
	u, err := h.store.Authenticate(input.Body.Email, input.Body.Password)
	if err != nil {
		h.log.Debug("login failed", slog.String("email", input.Body.Email))
		return nil, respond.FromDomain(err)
	}
	return h.issue(u)
}

func (h *Handler) register(_ context.Context, input *registerInput) (*authOutput, error) {
	if err := respond.Check(input.Body); err != nil {
		return nil, err
	}
	u, err := h.store.CreateUser(input.Body.Email, input.Body.Username, input.Body.Password, model.RoleReader)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	h.log.Info("user registered", slog.String("user_id", u.ID))
	return h.issue(u)
}

func (h *Handler) refresh(_ context.Context, input *refreshInput) (*authOutput, error) {
	if err := respond.Check(input.Body); err != nil {
		return nil, err
	}
	pair, err := h.tokens.Refresh(input.Body.RefreshToken)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	return &authOutput{Body: respond.OK(model.AuthResult{
		Token:        pair.Access,
		RefreshToken: pair.Refresh,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	})}, nil
}

func (h *Handler) logout(ctx context.Context, _ *emptyInput) (*emptyOutput, error) {
	h.log.Debug("logout", slog.String("user_id", auth.UserID(ctx)))
	return &emptyOutput{Body: respond.OK[*respond.Empty](nil)}, nil
}

func (h *Handler) me(ctx context.Context, _ *emptyInput) (*userOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	u, err := h.store.User(userID)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	return &userOutput{Body: u}, nil
}

func (h *Handler) updateMe(ctx context.Context, input *updateMeInput) (*userOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := respond.Check(input.Body); err != nil {
		return nil, err
	}
	u, err := h.store.UpdateUser(userID, input.Body)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	return &userOutput{Body: u}, nil
}

func (h *Handler) preferences(ctx context.Context, _ *emptyInput) (*preferencesOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	return &preferencesOutput{Body: respond.OK(h.store.Preferences(userID))}, nil
}

func (h *Handler) updatePreferences(ctx context.Context, input *preferencesInput) (*preferencesOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := respond.Check(input.Body); err != nil {
		return nil, err
	}
	return &preferencesOutput{Body: respond.OK(h.store.SetPreferences(userID, input.Body))}, nil
}
