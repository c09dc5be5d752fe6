package paging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/domain/pagination"
)

type cursorStep struct {
	items []string
	meta  pagination.CursorMeta
	err   error
}

type cursorSource struct {
	steps []cursorStep
	reqs  []pagination.CursorRequest
}

func (s *cursorSource) fetch(_ context.Context, req pagination.CursorRequest) (*pagination.CursorPage[string], error) {
	s.reqs = append(s.reqs, req)
	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.err != nil {
		return nil, step.err
	}
	return &pagination.CursorPage[string]{Items: step.items, Metadata: step.meta}, nil
}

func TestCursorLoader_ForwardsCursorVerbatim(t *testing.T) {
	opaque := "eyJmaWVsZCI6ImNyZWF0ZWRBdCJ9==weird/+"
	src := &cursorSource{steps: []cursorStep{
		{items: []string{"a", "b"}, meta: pagination.CursorMeta{HasMore: true, NextCursor: opaque}},
		{items: []string{"c"}, meta: pagination.CursorMeta{HasMore: false}},
	}}
	l := NewCursorLoader(src.fetch, 2)
	ctx := context.Background()

	require.NoError(t, l.Reload(ctx))
	assert.Equal(t, opaque, l.NextCursor())

	require.NoError(t, l.LoadMore(ctx))
	require.Len(t, src.reqs, 2)
	assert.Empty(t, src.reqs[0].After)
	assert.Equal(t, opaque, src.reqs[1].After)
	assert.Empty(t, src.reqs[1].Before)
	assert.Equal(t, []string{"a", "b", "c"}, l.Items())
	assert.False(t, l.HasMore())

	// конец ленты: запрос не уходит
	require.NoError(t, l.LoadMore(ctx))
	assert.Len(t, src.reqs, 2)
	assert.Equal(t, pagination.StyleCursor, l.Style())
}

func TestCursorLoader_ReloadRestartsFromNoCursor(t *testing.T) {
	src := &cursorSource{steps: []cursorStep{
		{items: []string{"a"}, meta: pagination.CursorMeta{HasMore: true, NextCursor: "c1"}},
		{items: []string{"b"}, meta: pagination.CursorMeta{HasMore: true, NextCursor: "c2"}},
		{items: []string{"z"}, meta: pagination.CursorMeta{HasMore: true, NextCursor: "c9"}},
	}}
	l := NewCursorLoader(src.fetch, 1)
	ctx := context.Background()

	require.NoError(t, l.Reload(ctx))
	require.NoError(t, l.LoadMore(ctx))
	require.NoError(t, l.Reload(ctx))

	assert.Empty(t, src.reqs[2].After)
	assert.Equal(t, []string{"z"}, l.Items())
	assert.Equal(t, "c9", l.NextCursor())
}

func TestCursorLoader_FailureLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("offline")
	src := &cursorSource{steps: []cursorStep{
		{items: []string{"a"}, meta: pagination.CursorMeta{HasMore: true, NextCursor: "c1"}},
		{err: boom},
		{items: []string{"b"}, meta: pagination.CursorMeta{HasMore: false}},
	}}
	l := NewCursorLoader(src.fetch, 1)
	ctx := context.Background()

	require.NoError(t, l.Reload(ctx))
	assert.ErrorIs(t, l.LoadMore(ctx), boom)
	assert.Equal(t, []string{"a"}, l.Items())
	assert.Equal(t, "c1", l.NextCursor())
	assert.True(t, l.HasMore())

	require.NoError(t, l.LoadMore(ctx))
	assert.Equal(t, "c1", src.reqs[2].After)
	assert.Equal(t, []string{"a", "b"}, l.Items())
}

func TestCursorLoader_HasMoreWithoutCursorStops(t *testing.T) {
	src := &cursorSource{steps: []cursorStep{
		{items: []string{"a"}, meta: pagination.CursorMeta{HasMore: true}},
	}}
	l := NewCursorLoader(src.fetch, 1)

	require.NoError(t, l.Reload(context.Background()))
	assert.False(t, l.HasMore())
	require.NoError(t, l.LoadMore(context.Background()))
	assert.Len(t, src.reqs, 1)
}

func TestCursorLoader_Update(t *testing.T) {
	src := &cursorSource{steps: []cursorStep{
		{items: []string{"a", "b"}, meta: pagination.CursorMeta{}},
	}}
	l := NewCursorLoader(src.fetch, 2)
	require.NoError(t, l.Reload(context.Background()))

	l.Update(func(items []string) []string { return items[1:] })
	assert.Equal(t, []string{"b"}, l.Items())
}
