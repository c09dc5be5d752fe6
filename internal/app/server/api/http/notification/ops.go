package notification

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) op(id, method, path, summary string) huma.Operation {
	return huma.Operation{
		OperationID: id,
		Method:      method,
		Path:        path,
		Summary:     summary,
		Tags:        []string{"notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return h.op("notifications-list", http.MethodGet, "/api/notifications", "Лента уведомлений (курсор)")
}

func (h *Handler) unreadCountOp() huma.Operation {
	return h.op("notifications-unread-count", http.MethodGet, "/api/notifications/unread-count", "Число непрочитанных")
}

func (h *Handler) newCountOp() huma.Operation {
	return h.op("notifications-new-count", http.MethodGet, "/api/notifications/new-count", "Число новых с последнего просмотра")
}

func (h *Handler) markReadOp() huma.Operation {
	return h.op("notifications-read", http.MethodPatch, "/api/notifications/{id}/read", "Отметить прочитанным")
}

func (h *Handler) markAllReadOp() huma.Operation {
	return h.op("notifications-read-all", http.MethodPatch, "/api/notifications/read-all", "Отметить все прочитанными")
}

func (h *Handler) deleteOp() huma.Operation {
	return h.op("notifications-delete", http.MethodDelete, "/api/notifications/{id}", "Удалить уведомление")
}

func (h *Handler) checkedOp() huma.Operation {
	return h.op("notifications-checked", http.MethodPost, "/api/notifications/checked", "Отметка просмотра ленты")
}

func (h *Handler) createOp() huma.Operation {
	op := h.op("notifications-create", http.MethodPost, "/api/notifications", "Создать уведомление себе (песочница)")
	op.DefaultStatus = http.StatusCreated
	return op
}

func (h *Handler) devicesOp() huma.Operation {
	return h.op("notifications-devices", http.MethodPost, "/api/notifications/devices", "Регистрация устройства для push")
}
