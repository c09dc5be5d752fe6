package types

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"pressroom/internal/app/client/call"
)

func TestNotifier(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	Notifier{Out: &buf}.Notify(&call.Failure{
		Kind:    call.KindValidation,
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  []call.FieldError{{Field: "email", Message: "email is required"}},
	})

	assert.Equal(t, "[validation] 400 Validation failed\n  email: email is required\n", buf.String())
}

func TestNotified(t *testing.T) {
	f := &call.Failure{Kind: call.KindServer, Message: "boom"}

	assert.True(t, Notified(f))
	assert.True(t, Notified(fmt.Errorf("list: %w", f)))
	assert.False(t, Notified(errors.New("plain")))
}

func TestEnv_Print(t *testing.T) {
	var buf bytes.Buffer
	env := &Env{JSON: true, Out: &buf}

	assert.NoError(t, env.Print(map[string]int{"unread": 3}, func(*tabwriter.Writer) {
		t.Fatal("table must not be used for JSON output")
	}))
	assert.JSONEq(t, `{"unread":3}`, buf.String())

	buf.Reset()
	env.JSON = false
	assert.NoError(t, env.Print(nil, func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "a\tb")
	}))
	assert.Equal(t, "a  b\n", buf.String())
}
