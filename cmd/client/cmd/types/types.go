// Package types — общее окружение команд клиента: приложение в контексте,
// вывод таблицей или JSON и цветные сообщения об ошибках.
package types

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pressroom/internal/app/client"
	"pressroom/internal/app/client/call"
)

type contextKey string

// ClientAppKey — ключ окружения команды в контексте cobra
const ClientAppKey contextKey = "client_env"

var ErrNoApp = errors.New("приложение не инициализировано")

// Env — то, что получает каждая команда
type Env struct {
	App  *client.App
	JSON bool
	Out  io.Writer
}

func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, ClientAppKey, env)
}

// From достает окружение из контекста команды
func From(cmd *cobra.Command) (*Env, error) {
	env, ok := cmd.Context().Value(ClientAppKey).(*Env)
	if !ok || env == nil || env.App == nil {
		return nil, ErrNoApp
	}
	if env.Out == nil {
		env.Out = os.Stdout
	}
	return env, nil
}

// RequireAuth отклоняет команду без сохраненной сессии
func (e *Env) RequireAuth() error {
	if !e.App.Authenticated() {
		return errors.New("требуется вход: pressroom auth login")
	}
	return nil
}

// Print выводит v как JSON при --json, иначе вызывает table
func (e *Env) Print(v any, table func(w *tabwriter.Writer)) error {
	if e.JSON {
		enc := json.NewEncoder(e.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	w := tabwriter.NewWriter(e.Out, 0, 4, 2, ' ', 0)
	table(w)
	return w.Flush()
}

func (e *Env) Success(format string, args ...any) {
	if e.JSON {
		return
	}
	_, _ = color.New(color.FgGreen).Fprintf(e.Out, "✓ "+format+"\n", args...)
}

// Notifier печатает классифицированные ошибки вызовов в stderr
type Notifier struct {
	Out io.Writer
}

var _ call.Notifier = Notifier{}

func (n Notifier) Notify(f *call.Failure) {
	out := n.Out
	if out == nil {
		out = os.Stderr
	}

	paint := color.New(color.FgRed, color.Bold)
	switch f.Kind {
	case call.KindValidation:
		paint = color.New(color.FgYellow, color.Bold)
	case call.KindNetwork, call.KindAuth:
		paint = color.New(color.FgMagenta, color.Bold)
	}

	_, _ = paint.Fprintf(out, "[%s] ", f.Kind)
	if f.Status != 0 {
		_, _ = fmt.Fprintf(out, "%d ", f.Status)
	}
	_, _ = fmt.Fprintln(out, f.Message)
	for _, fe := range f.Fields {
		_, _ = fmt.Fprintf(out, "  %s: %s\n", color.CyanString(fe.Field), fe.Message)
	}
}

// Notified — ошибка уже показана через Notifier
func Notified(err error) bool {
	var f *call.Failure
	return errors.As(err, &f)
}

func YesNo(b bool) string {
	if b {
		return color.GreenString("yes")
	}
	return "no"
}
