package notification

import (
	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type listInput struct {
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100"`
	After  string `query:"after"`
	Before string `query:"before"`
	Unread bool   `query:"unread"`
	Type   string `query:"type" enum:"comment,follow,subscription,contribution,payout,system"`
}

type listOutput struct {
	Body pagination.CursorPage[model.Notification]
}

type emptyInput struct{}

type idInput struct {
	ID string `path:"id"`
}

type countOutput struct {
	Body respond.Envelope[respond.Count]
}

type emptyOutput struct {
	Body respond.Envelope[*respond.Empty]
}

type CreateRequest struct {
	Type  model.NotificationType `json:"type" enum:"comment,follow,subscription,contribution,payout,system"`
	Title string                 `json:"title" minLength:"1" maxLength:"200"`
	Body  string                 `json:"body,omitempty"`
	Link  string                 `json:"link,omitempty"`
}

type createInput struct {
	Body CreateRequest
}

type notificationOutput struct {
	Body respond.Envelope[model.Notification]
}

type deviceInput struct {
	Body model.DeviceRequest
}
