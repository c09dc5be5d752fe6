package channel

import (
	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type listInput struct {
	Page       int    `query:"page" default:"1" minimum:"1"`
	Limit      int    `query:"limit" default:"20" minimum:"1" maximum:"100"`
	Search     string `query:"search"`
	Category   string `query:"category"`
	Sort       string `query:"sort" enum:"popular,latest,name"`
	Verified   bool   `query:"verified"`
	Subscribed bool   `query:"subscribed"`
	Mine       bool   `query:"mine"`
}

// ChannelListResponse — коллекция каналов; метаданные в поле "metadata"
type ChannelListResponse struct {
	Items    []model.Channel       `json:"items"`
	Metadata pagination.OffsetMeta `json:"metadata"`
}

type listOutput struct {
	Body ChannelListResponse
}

type idInput struct {
	ID string `path:"id"`
}

type channelOutput struct {
	Body model.Channel
}

type SubscriptionState struct {
	Subscribed  bool `json:"subscribed"`
	Subscribers int  `json:"subscribers"`
}

type subscriptionOutput struct {
	Body respond.Envelope[SubscriptionState]
}
