package model

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Preferences — пользовательские настройки клиента
type Preferences struct {
	Theme             ThemeMode `json:"theme" validate:"oneof=light dark system"`
	Language          string    `json:"language" validate:"required,bcp47_language_tag"`
	PageSize          int       `json:"pageSize" validate:"gte=1,lte=100"`
	EmailDigest       bool      `json:"emailDigest"`
	NotificationSound bool      `json:"notificationSound"`
}

// DefaultPreferences — настройки до первой загрузки
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:             ThemeSystem,
		Language:          "en",
		PageSize:          20,
		NotificationSound: true,
	}
}
