package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pressroom/internal/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetMe(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockService) UpdateMe(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func TestReload(t *testing.T) {
	svc := new(mockService)
	p := New(func() Service { return svc })
	svc.On("GetMe", mock.Anything).Return(&model.User{ID: "u1", Role: model.RoleAdmin}, nil).Once()

	require.NoError(t, p.Reload(context.Background(), true))
	assert.Equal(t, "u1", p.Current().ID)
	assert.True(t, p.HasRole(model.RoleEditor, model.RoleAdmin))

	require.NoError(t, p.Reload(context.Background(), false))
	assert.Nil(t, p.Current())
	assert.False(t, p.HasRole(model.RoleAdmin))
	svc.AssertExpectations(t)
}

func TestReload_ErrorKeepsPrevious(t *testing.T) {
	svc := new(mockService)
	p := New(func() Service { return svc })
	svc.On("GetMe", mock.Anything).Return(&model.User{ID: "u1"}, nil).Once()
	svc.On("GetMe", mock.Anything).Return(nil, errors.New("offline")).Once()

	require.NoError(t, p.Reload(context.Background(), true))
	assert.Error(t, p.Reload(context.Background(), true))
	assert.Equal(t, "u1", p.Current().ID)
}

func TestCurrentIsACopy(t *testing.T) {
	svc := new(mockService)
	p := New(func() Service { return svc })
	name := "New"
	svc.On("UpdateMe", mock.Anything, mock.Anything).Return(&model.User{ID: "u1", DisplayName: name}, nil).Once()

	u, err := p.Update(context.Background(), model.UpdateProfileRequest{DisplayName: &name})
	require.NoError(t, err)
	u.DisplayName = "changed"
	assert.Equal(t, "New", p.Current().DisplayName)
}
