package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOffsetMeta(t *testing.T) {
	tests := []struct {
		name  string
		total int
		page  int
		limit int
		want  OffsetMeta
	}{
		{
			name: "first of three pages", total: 25, page: 1, limit: 10,
			want: OffsetMeta{Total: 25, PageCount: 3, CurrentPage: 1, HasNext: true, HasPrev: false, Limit: 10},
		},
		{
			name: "middle page", total: 25, page: 2, limit: 10,
			want: OffsetMeta{Total: 25, PageCount: 3, CurrentPage: 2, HasNext: true, HasPrev: true, Limit: 10},
		},
		{
			name: "last page", total: 25, page: 3, limit: 10,
			want: OffsetMeta{Total: 25, PageCount: 3, CurrentPage: 3, HasNext: false, HasPrev: true, Limit: 10},
		},
		{
			name: "exact multiple", total: 20, page: 2, limit: 10,
			want: OffsetMeta{Total: 20, PageCount: 2, CurrentPage: 2, HasNext: false, HasPrev: true, Limit: 10},
		},
		{
			name: "empty collection", total: 0, page: 1, limit: 10,
			want: OffsetMeta{Total: 0, PageCount: 0, CurrentPage: 1, HasNext: false, HasPrev: false, Limit: 10},
		},
		{
			name: "zero limit uses default", total: 45, page: 1, limit: 0,
			want: OffsetMeta{Total: 45, PageCount: 3, CurrentPage: 1, HasNext: true, HasPrev: false, Limit: DefaultLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewOffsetMeta(tt.total, tt.page, tt.limit))
		})
	}
}

func TestWindow(t *testing.T) {
	start, end := Window(25, 1, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = Window(25, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = Window(25, 4, 10)
	assert.Equal(t, start, end)

	start, end = Window(25, 0, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

// Две страницы по limit равны первым 2*limit элементам
func TestWindow_Concatenation(t *testing.T) {
	items := make([]int, 37)
	for i := range items {
		items[i] = i
	}
	limit := 10

	s1, e1 := Window(len(items), 1, limit)
	s2, e2 := Window(len(items), 2, limit)
	got := append(append([]int{}, items[s1:e1]...), items[s2:e2]...)

	s, e := Window(len(items), 1, 2*limit)
	assert.Equal(t, items[s:e], got)
}

func TestOffsetRequest_Validate(t *testing.T) {
	assert.NoError(t, OffsetRequest{Page: 1, Limit: 10}.Validate())
	assert.ErrorIs(t, OffsetRequest{Page: 0, Limit: 10}.Validate(), ErrInvalidPage)
	assert.ErrorIs(t, OffsetRequest{Page: 1, Limit: 0}.Validate(), ErrInvalidLimit)
	assert.ErrorIs(t, OffsetRequest{Page: 1, Limit: 500}.Validate(), ErrLimitTooLarge)

	assert.Equal(t, OffsetRequest{Page: 3, Limit: 10}, OffsetRequest{Page: 2, Limit: 10}.Next())
	assert.Equal(t, OffsetRequest{Page: 1, Limit: DefaultLimit}, FirstPage(0))
}

func TestCursorRequest_Validate(t *testing.T) {
	assert.NoError(t, CursorRequest{Limit: 10}.Validate())
	assert.NoError(t, CursorRequest{Limit: 10, After: "abc"}.Validate())
	assert.ErrorIs(t, CursorRequest{Limit: 10, After: "a", Before: "b"}.Validate(), ErrMixedCursors)
	assert.ErrorIs(t, CursorRequest{Limit: 0}.Validate(), ErrInvalidLimit)

	var r Request = CursorRequest{Limit: 1}
	assert.Equal(t, StyleCursor, r.Style())
	r = OffsetRequest{Page: 1, Limit: 1}
	assert.Equal(t, StyleOffset, r.Style())
}
