// Package fault — принудительные ответы с ошибкой для отработки сбоев:
// правило "METHOD path" → статус. Путь может заканчиваться на "*".
package fault

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Rule — одно правило сбоя
type Rule struct {
	Method string `json:"method" enum:"GET,POST,PUT,PATCH,DELETE"`
	Path   string `json:"path" minLength:"1"`
	Status int    `json:"status" minimum:"400" maximum:"599"`
}

func (r Rule) key() string {
	return r.Method + " " + r.Path
}

func (r Rule) matches(method, path string) bool {
	if r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Path, "*"); ok {
		return strings.HasPrefix(path, prefix)
	}
	return r.Path == path
}

type Injector struct {
	log *slog.Logger

	mu    sync.RWMutex
	rules map[string]Rule
}

func New(log *slog.Logger) *Injector {
	return &Injector{
		log:   log.With(slog.String("component", "fault_injector")),
		rules: make(map[string]Rule),
	}
}

// Parse разбирает правила вида "PATCH /api/notifications/read-all=500;GET /api/news=503"
func Parse(spec string) ([]Rule, error) {
	var rules []Rule
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		target, code, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("fault rule %q: expected METHOD path=status", part)
		}
		method, path, ok := strings.Cut(strings.TrimSpace(target), " ")
		if !ok {
			return nil, fmt.Errorf("fault rule %q: expected METHOD path", part)
		}
		status, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil || status < 400 || status > 599 {
			return nil, fmt.Errorf("fault rule %q: status must be 400..599", part)
		}
		rules = append(rules, Rule{
			Method: strings.ToUpper(method),
			Path:   strings.TrimSpace(path),
			Status: status,
		})
	}
	return rules, nil
}

func (i *Injector) Set(r Rule) {
	r.Method = strings.ToUpper(r.Method)
	i.mu.Lock()
	i.rules[r.key()] = r
	i.mu.Unlock()
	i.log.Info("fault rule set", slog.String("rule", r.key()), slog.Int("status", r.Status))
}

func (i *Injector) Clear(method, path string) {
	i.mu.Lock()
	delete(i.rules, strings.ToUpper(method)+" "+path)
	i.mu.Unlock()
}

func (i *Injector) Reset() {
	i.mu.Lock()
	i.rules = make(map[string]Rule)
	i.mu.Unlock()
}

// Rules возвращает правила в стабильном порядке
func (i *Injector) Rules() []Rule {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]Rule, 0, len(i.rules))
	for _, r := range i.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].key() < out[b].key() })
	return out
}

func (i *Injector) match(method, path string) (Rule, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if r, ok := i.rules[method+" "+path]; ok {
		return r, true
	}
	for _, r := range i.rules {
		if r.matches(method, path) {
			return r, true
		}
	}
	return Rule{}, false
}

func (i *Injector) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		r, ok := i.match(ctx.Method(), ctx.URL().Path)
		if !ok {
			next(ctx)
			return
		}

		i.log.Debug("fault injected",
			slog.String("method", ctx.Method()),
			slog.String("path", ctx.URL().Path),
			slog.Int("status", r.Status),
		)
		ctx.SetHeader("Content-Type", "application/json")
		ctx.SetStatus(r.Status)
		if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
			"status":  "error",
			"message": http.StatusText(r.Status),
		}); err != nil {
			i.log.Error("encode fault response", slog.String("error", err.Error()))
		}
	}
}
