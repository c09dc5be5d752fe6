package model

type SearchResults struct {
	Query    string    `json:"query"`
	News     []News    `json:"news"`
	Channels []Channel `json:"channels"`
	Users    []User    `json:"users"`
	Tags     []Tag     `json:"tags"`
	Total    int       `json:"total"`
}

// StudioStats — сводка автора в студии
type StudioStats struct {
	ChannelID   string `json:"channelId,omitempty"`
	Period      string `json:"period"`
	Views       int    `json:"views"`
	Likes       int    `json:"likes"`
	NewFollows  int    `json:"newFollows"`
	Subscribers int    `json:"subscribers"`
	Revenue     int64  `json:"revenue"`
	Currency    string `json:"currency"`
}

type Earnings struct {
	Period        string `json:"period"`
	Subscriptions int64  `json:"subscriptions"`
	Contributions int64  `json:"contributions"`
	Total         int64  `json:"total"`
	Currency      string `json:"currency"`
}

type AudiencePoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Audience struct {
	Countries []AudiencePoint `json:"countries"`
	Devices   []AudiencePoint `json:"devices"`
	Ages      []AudiencePoint `json:"ages"`
}
