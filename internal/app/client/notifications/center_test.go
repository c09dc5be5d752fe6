package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pressroom/internal/app/client/api"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/infrastructure/push"
	"pressroom/internal/model"
	"pressroom/internal/utils/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, filter api.NotificationFilter, page pagination.CursorRequest) (*pagination.CursorPage[model.Notification], error) {
	args := m.Called(ctx, filter, page)
	p, _ := args.Get(0).(*pagination.CursorPage[model.Notification])
	return p, args.Error(1)
}

func (m *mockService) GetUnreadCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockService) GetNewCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockService) MarkAsRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) MarkAllAsRead(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) MarkAsChecked(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var (
	fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	errBoom  = errors.New("boom")
)

func page(items ...model.Notification) *pagination.CursorPage[model.Notification] {
	return &pagination.CursorPage[model.Notification]{Items: items}
}

func unread(id string) model.Notification {
	return model.Notification{ID: id, Title: id}
}

func read(id string, at time.Time) model.Notification {
	return model.Notification{ID: id, Title: id, IsRead: true, ReadAt: &at}
}

func newCenter(t *testing.T, svc *mockService) *Center {
	t.Helper()
	return NewCenter(func() Service { return svc }, logger.Discard(), WithClock(func() time.Time { return fixedNow }))
}

func loaded(t *testing.T, svc *mockService, items ...model.Notification) *Center {
	t.Helper()
	svc.On("List", mock.Anything, api.NotificationFilter{}, pagination.CursorRequest{Limit: pagination.DefaultLimit}).
		Return(page(items...), nil).Once()
	svc.On("GetUnreadCount", mock.Anything).Return(countUnread(items), nil).Once()
	svc.On("GetNewCount", mock.Anything).Return(1, nil).Once()

	c := newCenter(t, svc)
	require.NoError(t, c.Refresh(context.Background()))
	return c
}

func countUnread(items []model.Notification) int {
	n := 0
	for _, it := range items {
		if !it.IsRead {
			n++
		}
	}
	return n
}

func TestMarkAsRead_Success(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"))
	svc.On("MarkAsRead", mock.Anything, "a").Return(nil).Once()

	require.NoError(t, c.MarkAsRead(context.Background(), "a"))

	items := c.Items()
	assert.True(t, items[0].IsRead)
	require.NotNil(t, items[0].ReadAt)
	assert.True(t, fixedNow.Equal(*items[0].ReadAt))
	assert.False(t, items[1].IsRead)
	assert.Equal(t, 1, c.Unread())
	assert.Equal(t, 0, c.Pending("a"))
	svc.AssertExpectations(t)
}

func TestMarkAsRead_RollbackRestoresExactFields(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"))

	started := make(chan struct{})
	release := make(chan struct{})
	svc.On("MarkAsRead", mock.Anything, "a").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(errBoom).Once()

	done := make(chan error)
	go func() { done <- c.MarkAsRead(context.Background(), "a") }()
	<-started

	// оптимистичное состояние видно до ответа сервера
	assert.True(t, c.Items()[0].IsRead)
	assert.Equal(t, 1, c.Pending("a"))
	assert.Equal(t, 1, c.Unread())

	close(release)
	assert.ErrorIs(t, <-done, errBoom)

	items := c.Items()
	assert.False(t, items[0].IsRead)
	assert.Nil(t, items[0].ReadAt)
	assert.Equal(t, 0, c.Pending("a"))
	assert.Equal(t, 2, c.Unread())
}

func TestMarkAsRead_RollbackKeepsPreviousReadAt(t *testing.T) {
	earlier := fixedNow.Add(-time.Hour)
	svc := new(mockService)
	c := loaded(t, svc, read("a", earlier))
	svc.On("MarkAsRead", mock.Anything, "a").Return(errBoom).Once()

	assert.ErrorIs(t, c.MarkAsRead(context.Background(), "a"), errBoom)

	items := c.Items()
	assert.True(t, items[0].IsRead)
	require.NotNil(t, items[0].ReadAt)
	assert.True(t, earlier.Equal(*items[0].ReadAt))
}

func TestMarkAllAsRead_Success(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"))
	svc.On("MarkAllAsRead", mock.Anything).Return(2, nil).Once()

	require.NoError(t, c.MarkAllAsRead(context.Background()))
	for _, n := range c.Items() {
		assert.True(t, n.IsRead)
	}
	assert.Equal(t, 0, c.Unread())
}

func TestMarkAllAsRead_FailureRefreshesFromServer(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"))

	svc.On("MarkAllAsRead", mock.Anything).Return(0, errBoom).Once()
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(page(read("a", fixedNow), unread("b"), unread("c")), nil).Once()
	svc.On("GetUnreadCount", mock.Anything).Return(2, nil).Once()
	svc.On("GetNewCount", mock.Anything).Return(0, nil).Once()

	assert.ErrorIs(t, c.MarkAllAsRead(context.Background()), errBoom)

	items := c.Items()
	require.Len(t, items, 3)
	assert.True(t, items[0].IsRead)
	assert.False(t, items[1].IsRead)
	assert.Equal(t, 2, c.Unread())
	svc.AssertExpectations(t)
}

func TestMarkAllAsRead_FailedRefreshRestoresSnapshot(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), read("b", fixedNow.Add(-time.Minute)))

	svc.On("MarkAllAsRead", mock.Anything).Return(0, errBoom).Once()
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errBoom).Once()
	svc.On("GetUnreadCount", mock.Anything).Return(0, errBoom).Once()

	assert.ErrorIs(t, c.MarkAllAsRead(context.Background()), errBoom)

	items := c.Items()
	require.Len(t, items, 2)
	assert.False(t, items[0].IsRead)
	assert.Nil(t, items[0].ReadAt)
	assert.True(t, items[1].IsRead)
	assert.Equal(t, 1, c.Unread())
}

func TestMarkAllAsRead_OptimisticBeforeResponse(t *testing.T) {
	svc := new(mockService)
	earlier := fixedNow.Add(-time.Hour)
	c := loaded(t, svc, unread("a"), read("b", earlier), unread("c"), read("d", earlier), unread("e"))
	require.Equal(t, 3, c.Unread())

	started := make(chan struct{})
	release := make(chan struct{})
	svc.On("MarkAllAsRead", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(3, nil).Once()

	done := make(chan error)
	go func() { done <- c.MarkAllAsRead(context.Background()) }()
	<-started

	items := c.Items()
	require.Len(t, items, 5)
	for _, n := range items {
		assert.True(t, n.IsRead, "item %s must be read before response", n.ID)
	}
	assert.Equal(t, 0, c.Unread())
	// уже прочитанные сохраняют свое время
	assert.True(t, earlier.Equal(*items[1].ReadAt))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 0, c.Unread())
	svc.AssertExpectations(t)
}

func TestMarkAllAsRead_CountsFailureKeepsReloadedFeed(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"))

	svc.On("MarkAllAsRead", mock.Anything).Return(0, errBoom).Once()
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(page(unread("a"), unread("b"), unread("c")), nil).Once()
	svc.On("GetUnreadCount", mock.Anything).Return(0, errBoom).Once()

	assert.ErrorIs(t, c.MarkAllAsRead(context.Background()), errBoom)

	items := c.Items()
	require.Len(t, items, 3, "feed from server is not replaced by snapshot")
	assert.Equal(t, "c", items[2].ID)
	assert.Equal(t, 2, c.Unread())
	svc.AssertExpectations(t)
}

func TestDelete_OptimisticBeforeResponse(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"), read("c", fixedNow))

	started := make(chan struct{})
	release := make(chan struct{})
	svc.On("Delete", mock.Anything, "a").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	done := make(chan error)
	go func() { done <- c.Delete(context.Background(), "a") }()
	<-started

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, 1, c.Unread())
	assert.Equal(t, 1, c.Pending("a"))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 0, c.Pending("a"))
	assert.Len(t, c.Items(), 2)
}

func TestDelete_FailureRefreshes(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"))

	svc.On("Delete", mock.Anything, "a").Return(errBoom).Once()
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(page(unread("a"), unread("b")), nil).Once()
	svc.On("GetUnreadCount", mock.Anything).Return(2, nil).Once()
	svc.On("GetNewCount", mock.Anything).Return(0, nil).Once()

	assert.ErrorIs(t, c.Delete(context.Background(), "a"), errBoom)
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, 2, c.Unread())
}

func TestDelete_Success(t *testing.T) {
	svc := new(mockService)
	c := loaded(t, svc, unread("a"), unread("b"))
	svc.On("Delete", mock.Anything, "a").Return(nil).Once()

	require.NoError(t, c.Delete(context.Background(), "a"))
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, 1, c.Unread())
}

func TestOpen_ResetsBadge(t *testing.T) {
	svc := new(mockService)
	c := newCenter(t, svc)
	svc.On("GetUnreadCount", mock.Anything).Return(3, nil)
	svc.On("GetNewCount", mock.Anything).Return(5, nil)
	svc.On("MarkAsChecked", mock.Anything).Return(nil).Once()

	require.NoError(t, c.Open(context.Background()))
	assert.Equal(t, 0, c.Badge())
	assert.Equal(t, 3, c.Unread())
}

func TestOpen_RestoresBadgeOnFailure(t *testing.T) {
	svc := new(mockService)
	c := newCenter(t, svc)
	svc.On("GetUnreadCount", mock.Anything).Return(3, nil)
	svc.On("GetNewCount", mock.Anything).Return(5, nil)
	svc.On("MarkAsChecked", mock.Anything).Return(errBoom).Once()

	assert.ErrorIs(t, c.Open(context.Background()), errBoom)
	assert.Equal(t, 5, c.Badge())
}

func TestProviderIsReadOnEveryCall(t *testing.T) {
	first, second := new(mockService), new(mockService)
	current := first
	c := NewCenter(func() Service { return current }, logger.Discard())

	first.On("MarkAsChecked", mock.Anything).Return(nil).Once()
	require.NoError(t, c.MarkChecked(context.Background()))

	current = second
	second.On("MarkAsChecked", mock.Anything).Return(nil).Once()
	require.NoError(t, c.MarkChecked(context.Background()))

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

type fakeSource struct {
	events []push.Event
}

func (f *fakeSource) Subscribe(context.Context) (<-chan push.Event, error) {
	ch := make(chan push.Event, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func TestListen_RefreshesOnPush(t *testing.T) {
	svc := new(mockService)
	c := newCenter(t, svc)
	svc.On("GetUnreadCount", mock.Anything).Return(1, nil).Once()
	svc.On("GetNewCount", mock.Anything).Return(1, nil).Once()

	src := &fakeSource{events: []push.Event{{Kind: push.KindCreated, NotificationID: "n1"}}}
	require.NoError(t, c.Listen(context.Background(), src))

	assert.Equal(t, 1, c.Badge())
	assert.Equal(t, 1, c.Unread())
	svc.AssertExpectations(t)
}

func TestListen_EventHook(t *testing.T) {
	svc := new(mockService)
	var seen []string
	c := NewCenter(func() Service { return svc }, logger.Discard(),
		WithClock(func() time.Time { return fixedNow }),
		WithEventHook(func(ev push.Event) { seen = append(seen, ev.Kind) }),
	)
	svc.On("GetUnreadCount", mock.Anything).Return(0, nil).Once()
	svc.On("GetNewCount", mock.Anything).Return(0, errBoom).Once()
	svc.On("GetUnreadCount", mock.Anything).Return(2, nil).Once()
	svc.On("GetNewCount", mock.Anything).Return(2, nil).Once()

	src := &fakeSource{events: []push.Event{
		{Kind: push.KindCreated, NotificationID: "n1"},
		{Kind: push.KindCreated, NotificationID: "n2"},
	}}
	require.NoError(t, c.Listen(context.Background(), src))

	// первое событие не обработано, хук вызывается только для второго
	assert.Equal(t, []string{push.KindCreated}, seen)
	assert.Equal(t, 2, c.Badge())
	svc.AssertExpectations(t)
}
