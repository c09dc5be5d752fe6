// Package api содержит ресурсные клиенты платформы и фасад, который собирает
// их поверх одного общего транспорта.
package api

import (
	"sync"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
)

// AppAPI — ресурсы пользовательской части
type AppAPI struct {
	News          *NewsAPI
	Polls         *PollAPI
	Channels      *ChannelAPI
	Users         *UserAPI
	Tags          *TagAPI
	Subscriptions *SubscriptionAPI
	ExpenseOrders *ExpenseOrderAPI
	Funding       *FundingAPI
	Notifications *NotificationAPI
	Payouts       *PayoutAPI
	Account       *AccountAPI
	Auth          *AuthAPI
	Search        *SearchAPI
	Studio        *StudioAPI
}

func NewAppAPI(t *transport.Client, s session.Session) *AppAPI {
	return &AppAPI{
		News:          NewNewsAPI(t, s),
		Polls:         NewPollAPI(t, s),
		Channels:      NewChannelAPI(t, s),
		Users:         NewUserAPI(t, s),
		Tags:          NewTagAPI(t, s),
		Subscriptions: NewSubscriptionAPI(t, s),
		ExpenseOrders: NewExpenseOrderAPI(t, s),
		Funding:       NewFundingAPI(t, s),
		Notifications: NewNotificationAPI(t, s),
		Payouts:       NewPayoutAPI(t, s),
		Account:       NewAccountAPI(t, s),
		Auth:          NewAuthAPI(t, s),
		Search:        NewSearchAPI(t, s),
		Studio:        NewStudioAPI(t, s),
	}
}

// AdminAPI — ресурсы панели администратора
type AdminAPI struct {
	News          *AdminNewsAPI
	Users         *AdminUserAPI
	Channels      *AdminChannelAPI
	ExpenseOrders *AdminExpenseOrderAPI
	Payouts       *AdminPayoutAPI
}

func NewAdminAPI(t *transport.Client, s session.Session) *AdminAPI {
	return &AdminAPI{
		News:          NewAdminNewsAPI(t, s),
		Users:         NewAdminUserAPI(t, s),
		Channels:      NewAdminChannelAPI(t, s),
		ExpenseOrders: NewAdminExpenseOrderAPI(t, s),
		Payouts:       NewAdminPayoutAPI(t, s),
	}
}

// APIs — фасад над одним транспортом. Смена токена делается в два шага:
// SetAuthHeader меняет заголовок транспорта, SetApis пересобирает ресурсы
// на новой сессии. Transition выполняет оба шага под одной блокировкой.
// Ссылки на ресурсы нельзя хранить дольше одной смены токена: после нее
// старые ресурсы отвечают transport.ErrStaleSession.
type APIs struct {
	transport *transport.Client

	mu      sync.RWMutex
	session session.Session
	app     *AppAPI
	admin   *AdminAPI
}

// New создает фасад без токена
func New(t *transport.Client) *APIs {
	a := &APIs{transport: t}
	a.session = t.Apply(session.Anonymous())
	a.build()
	return a
}

func (a *APIs) build() {
	a.app = NewAppAPI(a.transport, a.session)
	a.admin = NewAdminAPI(a.transport, a.session)
}

// SetAuthHeader применяет токен к транспорту; пустой токен удаляет заголовок
func (a *APIs) SetAuthHeader(token string) *APIs {
	return a.SetSession(session.New(token))
}

// SetSession применяет сессию (с refresh-токеном) к транспорту
func (a *APIs) SetSession(s session.Session) *APIs {
	a.mu.Lock()
	a.session = a.transport.Apply(s)
	a.mu.Unlock()
	return a
}

// SetApis пересобирает все ресурсы на текущей сессии
func (a *APIs) SetApis() *APIs {
	a.mu.Lock()
	a.build()
	a.mu.Unlock()
	return a
}

// Transition атомарно применяет сессию и пересобирает ресурсы
func (a *APIs) Transition(s session.Session) *APIs {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = a.transport.Apply(s)
	a.build()
	return a
}

func (a *APIs) Session() session.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *APIs) Transport() *transport.Client {
	return a.transport
}

func (a *APIs) App() *AppAPI {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.app
}

func (a *APIs) Admin() *AdminAPI {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.admin
}

func (a *APIs) News() *NewsAPI                  { return a.App().News }
func (a *APIs) Polls() *PollAPI                 { return a.App().Polls }
func (a *APIs) Channels() *ChannelAPI           { return a.App().Channels }
func (a *APIs) Users() *UserAPI                 { return a.App().Users }
func (a *APIs) Tags() *TagAPI                   { return a.App().Tags }
func (a *APIs) Subscriptions() *SubscriptionAPI { return a.App().Subscriptions }
func (a *APIs) ExpenseOrders() *ExpenseOrderAPI { return a.App().ExpenseOrders }
func (a *APIs) Funding() *FundingAPI            { return a.App().Funding }
func (a *APIs) Notifications() *NotificationAPI { return a.App().Notifications }
func (a *APIs) Payouts() *PayoutAPI             { return a.App().Payouts }
func (a *APIs) Account() *AccountAPI            { return a.App().Account }
func (a *APIs) Auth() *AuthAPI                  { return a.App().Auth }
func (a *APIs) Search() *SearchAPI              { return a.App().Search }
func (a *APIs) Studio() *StudioAPI              { return a.App().Studio }
