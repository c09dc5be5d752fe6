package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		arg     string
		want    func(p model.Preferences) bool
		wantErr bool
	}{
		{arg: "theme=dark", want: func(p model.Preferences) bool { return p.Theme == model.ThemeDark }},
		{arg: "lang=ru", want: func(p model.Preferences) bool { return p.Language == "ru" }},
		{arg: "page-size=50", want: func(p model.Preferences) bool { return p.PageSize == 50 }},
		{arg: "sound=false", want: func(p model.Preferences) bool { return !p.NotificationSound }},
		{arg: "email-digest=true", want: func(p model.Preferences) bool { return p.EmailDigest }},
		{arg: "page-size=many", wantErr: true},
		{arg: "theme", wantErr: true},
		{arg: "font=mono", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			change, err := parse(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			p := model.DefaultPreferences()
			change(&p)
			assert.True(t, tt.want(p))
		})
	}
}
