package news

import (
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type listInput struct {
	Page      int      `query:"page" default:"1" minimum:"1"`
	Limit     int      `query:"limit" default:"20" minimum:"1" maximum:"100"`
	Search    string   `query:"search"`
	Category  string   `query:"category"`
	Tags      []string `query:"tags"`
	ChannelID string   `query:"channelId"`
	AuthorID  string   `query:"authorId"`
	Status    string   `query:"status" enum:"draft,pending,published,rejected,archived"`
	Sort      string   `query:"sort" enum:"latest,trending,popular,oldest"`
	Featured  bool     `query:"featured"`
}

// NewsListResponse — коллекция новостей; метаданные в поле "meta"
type NewsListResponse struct {
	Items []model.News          `json:"items"`
	Meta  pagination.OffsetMeta `json:"meta"`
}

type listOutput struct {
	Body NewsListResponse
}

type idInput struct {
	ID string `path:"id"`
}

type newsOutput struct {
	Body model.News
}
