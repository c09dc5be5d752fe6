package channel

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "channels-list",
		Method:      http.MethodGet,
		Path:        "/api/channels",
		Summary:     "Список каналов",
		Tags:        []string{"channels"},
		Middlewares: h.public,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "channels-get",
		Method:      http.MethodGet,
		Path:        "/api/channels/{id}",
		Summary:     "Канал по id",
		Tags:        []string{"channels"},
		Middlewares: h.public,
	}
}

func (h *Handler) subscribeOp() huma.Operation {
	return huma.Operation{
		OperationID: "channels-subscribe",
		Method:      http.MethodPost,
		Path:        "/api/channels/{id}/subscribe",
		Summary:     "Подписка на канал",
		Tags:        []string{"channels"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.private,
	}
}

func (h *Handler) unsubscribeOp() huma.Operation {
	return huma.Operation{
		OperationID: "channels-unsubscribe",
		Method:      http.MethodDelete,
		Path:        "/api/channels/{id}/subscribe",
		Summary:     "Отписка от канала",
		Tags:        []string{"channels"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.private,
	}
}
