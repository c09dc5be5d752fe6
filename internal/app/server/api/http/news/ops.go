package news

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "news-list",
		Method:      http.MethodGet,
		Path:        "/api/news",
		Summary:     "Лента новостей",
		Tags:        []string{"news"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "news-get",
		Method:      http.MethodGet,
		Path:        "/api/news/{id}",
		Summary:     "Новость по id",
		Tags:        []string{"news"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getBySlugOp() huma.Operation {
	return huma.Operation{
		OperationID: "news-get-by-slug",
		Method:      http.MethodGet,
		Path:        "/api/news/slug/{id}",
		Summary:     "Новость по slug",
		Tags:        []string{"news"},
		Middlewares: h.middleware,
	}
}
