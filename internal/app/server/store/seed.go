package store

import (
	"fmt"
	"time"

	"pressroom/internal/model"
)

// Учетные данные демо-пользователя песочницы
const (
	DemoEmail    = "demo@pressroom.dev"
	DemoPassword = "pressroom-demo"
	DemoUsername = "demo"
)

type SeedOptions struct {
	Channels      int
	News          int
	Notifications int
}

var (
	seedCategories    = []string{"politics", "tech", "culture", "science", "sport"}
	seedTags          = []string{"breaking", "analysis", "local", "world", "opinion"}
	seedNotifications = []model.NotificationType{
		model.NotificationComment,
		model.NotificationFollow,
		model.NotificationSubscription,
		model.NotificationContribution,
		model.NotificationSystem,
	}
)

// Seed заполняет хранилище детерминированными данными и возвращает демо-пользователя
func (s *Store) Seed(opts SeedOptions) (model.User, error) {
	demo, err := s.CreateUser(DemoEmail, DemoUsername, DemoPassword, model.RoleCreator)
	if err != nil {
		return model.User{}, fmt.Errorf("seed demo user: %w", err)
	}

	base := s.now().UTC().Truncate(time.Minute)

	s.mu.Lock()
	for i := 0; i < opts.Channels; i++ {
		owner := ""
		if i%7 == 0 {
			owner = demo.ID
		}
		s.channels = append(s.channels, &model.Channel{
			ID:          newID(),
			Slug:        fmt.Sprintf("channel-%02d", i+1),
			Name:        fmt.Sprintf("Channel %02d", i+1),
			Description: "Sandbox channel",
			Category:    seedCategories[i%len(seedCategories)],
			OwnerID:     owner,
			Verified:    i%3 == 0,
			Subscribers: (i * 37) % 1000,
			CreatedAt:   base.Add(-time.Duration(i) * time.Hour),
		})
	}

	for i := 0; i < opts.News; i++ {
		channelID := ""
		if len(s.channels) > 0 {
			channelID = s.channels[i%len(s.channels)].ID
		}
		created := base.Add(-time.Duration(i) * 30 * time.Minute)
		published := created
		s.news = append(s.news, &model.News{
			ID:          newID(),
			Slug:        fmt.Sprintf("story-%03d", i+1),
			Title:       fmt.Sprintf("Story %03d", i+1),
			Summary:     "Sandbox story",
			Category:    seedCategories[i%len(seedCategories)],
			Tags:        []string{seedTags[i%len(seedTags)], seedTags[(i+2)%len(seedTags)]},
			Status:      model.NewsStatusPublished,
			Featured:    i%10 == 0,
			ChannelID:   channelID,
			AuthorID:    demo.ID,
			Views:       (i * 131) % 5000,
			Likes:       (i * 17) % 300,
			PublishedAt: &published,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}

	var fundFor *model.News
	if len(s.news) > 0 {
		fundFor = s.news[0]
	}
	s.mu.Unlock()

	if fundFor != nil {
		if _, err := s.AddFund(model.Fund{
			ContentType: "news",
			ContentID:   fundFor.ID,
			OwnerID:     demo.ID,
			Title:       "Support " + fundFor.Title,
			Goal:        100000,
			Raised:      12500,
			Currency:    "USD",
			Active:      true,
		}); err != nil {
			return model.User{}, fmt.Errorf("seed fund: %w", err)
		}
	}

	for i := 0; i < opts.Notifications; i++ {
		s.AddNotification(demo.ID, model.Notification{
			Type:      seedNotifications[i%len(seedNotifications)],
			Title:     fmt.Sprintf("Notification %02d", i+1),
			IsRead:    i%4 == 3,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}

	return demo, nil
}
