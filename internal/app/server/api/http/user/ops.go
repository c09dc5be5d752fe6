package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Вход по email и паролю",
		Tags:        []string{"auth"},
		Middlewares: h.public,
	}
}

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-register",
		Method:      http.MethodPost,
		Path:        "/api/auth/register",
		Summary:     "Регистрация пользователя",
		Tags:        []string{"auth"},
		Middlewares: h.public,
	}
}

func (h *Handler) refreshOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-refresh",
		Method:      http.MethodPost,
		Path:        "/api/auth/refresh",
		Summary:     "Обмен refresh-токена на новую пару",
		Tags:        []string{"auth"},
		Middlewares: h.public,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-logout",
		Method:      http.MethodPost,
		Path:        "/api/auth/logout",
		Summary:     "Выход",
		Tags:        []string{"auth"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.private,
	}
}

func (h *Handler) meOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-me",
		Method:      http.MethodGet,
		Path:        "/api/users/me",
		Summary:     "Профиль текущего пользователя",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.private,
	}
}

func (h *Handler) updateMeOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-me-update",
		Method:      http.MethodPatch,
		Path:        "/api/users/me",
		Summary:     "Изменение профиля",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.private,
	}
}

func (h *Handler) preferencesOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-me-preferences",
		Method:      http.MethodGet,
		Path:        "/api/users/me/preferences",
		Summary:     "Настройки пользователя",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.private,
	}
}

func (h *Handler) updatePreferencesOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-me-preferences-update",
		Method:      http.MethodPut,
		Path:        "/api/users/me/preferences",
		Summary:     "Сохранение настроек",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.private,
	}
}
