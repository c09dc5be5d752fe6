package model

import "time"

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Poll struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	NewsID     string       `json:"newsId,omitempty"`
	ChannelID  string       `json:"channelId,omitempty"`
	MultiVote  bool         `json:"multiVote"`
	Closed     bool         `json:"closed"`
	TotalVotes int          `json:"totalVotes"`
	MyVotes    []string     `json:"myVotes,omitempty"`
	EndsAt     *time.Time   `json:"endsAt,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

type CreatePollRequest struct {
	Question  string     `json:"question" validate:"required,max=300"`
	Options   []string   `json:"options" validate:"min=2,max=10,dive,required"`
	NewsID    string     `json:"newsId,omitempty"`
	ChannelID string     `json:"channelId,omitempty"`
	MultiVote bool       `json:"multiVote,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
}

type PollResults struct {
	PollID     string       `json:"pollId"`
	Options    []PollOption `json:"options"`
	TotalVotes int          `json:"totalVotes"`
}
