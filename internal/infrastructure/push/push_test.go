package push

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/utils/logger"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Event
		wantErr bool
	}{
		{
			name:    "created",
			payload: `{"kind":"notification.created","notificationId":"n1","userId":"u1","createdAt":"2024-05-01T10:00:00Z"}`,
			want: Event{
				Kind:           KindCreated,
				NotificationID: "n1",
				UserID:         "u1",
				CreatedAt:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name:    "read all without id",
			payload: `{"kind":"notification.read_all","userId":"u1"}`,
			want:    Event{Kind: KindReadAll, UserID: "u1"},
		},
		{name: "unknown kind", payload: `{"kind":"chat.message","notificationId":"n1"}`, wantErr: true},
		{name: "missing id", payload: `{"kind":"notification.read"}`, wantErr: true},
		{name: "garbage", payload: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEvent(tt.payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEvent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "pressroom:notifications:u1", Channel("", "u1"))
	assert.Equal(t, "x:u1", Channel("x:", "u1"))
}

func TestPump_SkipsInvalidMessages(t *testing.T) {
	s := &Subscriber{log: logger.Discard()}
	in := make(chan *redis.Message, 3)
	out := make(chan Event)

	in <- &redis.Message{Payload: `{"kind":"bogus"}`}
	in <- &redis.Message{Payload: `{"kind":"notification.deleted","notificationId":"n7"}`}
	close(in)

	go s.pump(context.Background(), in, out)

	var got []Event
	for ev := range out {
		got = append(got, ev)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "n7", got[0].NotificationID)
}

func TestPump_StopsOnContextDone(t *testing.T) {
	s := &Subscriber{log: logger.Discard()}
	in := make(chan *redis.Message)
	out := make(chan Event)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.pump(ctx, in, out)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop")
	}
	_, open := <-out
	assert.False(t, open)
}
