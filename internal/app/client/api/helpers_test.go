package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"pressroom/internal/app/client/transport"
	"pressroom/internal/utils/logger"
)

type request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
}

// recorder — тестовый сервер, отвечающий по таблице "METHOD path"
type recorder struct {
	mu        sync.Mutex
	requests  []request
	responses map[string]response
}

type response struct {
	status int
	body   string
}

func newRecorder(t *testing.T) (*recorder, *transport.Client) {
	t.Helper()
	rec := &recorder{responses: map[string]response{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.requests = append(rec.requests, request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   string(b),
		})
		resp, ok := rec.responses[r.Method+" "+r.URL.Path]
		rec.mu.Unlock()
		if !ok {
			resp = response{status: http.StatusOK, body: `{}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(srv.Close)
	return rec, transport.New(transport.Options{BaseURL: srv.URL}, logger.Discard())
}

func (r *recorder) on(method, path string, status int, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[method+" "+path] = response{status: status, body: body}
}

func (r *recorder) all() []request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]request(nil), r.requests...)
}

func (r *recorder) last() request {
	all := r.all()
	if len(all) == 0 {
		return request{}
	}
	return all[len(all)-1]
}

const emptyNewsPage = `{"items":[],"meta":{"total":0,"pageCount":0,"currentPage":1,"hasNext":false,"hasPrev":false,"limit":20}}`
