package resolvex

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/dnsdeck/internal/transport"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBind)
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

type captured struct {
	method      string
	path        string
	body        string
	contentType string
	userAgent   string
}

func TestClient_CallsEndpoints(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		calls []captured
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, captured{
			method:      r.Method,
			path:        r.URL.EscapedPath(),
			body:        strings.TrimSpace(string(raw)),
			contentType: r.Header.Get("Content-Type"),
			userAgent:   r.Header.Get("User-Agent"),
		})

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"list":[{"domain":"a.com","record":["1.1.1.1"],"expire":"2025-01-02T03:04:05Z"},{"domain":"b.com","record":null,"expire":null}]}`))
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, server.Client())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !list.HasList() || len(list.List) != 2 {
		t.Fatalf("List = %#v, want 2 records", list)
	}
	if list.List[0].Domain != "a.com" || list.List[0].ValueCount() != 1 || !list.List[0].HasExpire() {
		t.Fatalf("first record = %#v", list.List[0])
	}
	if list.List[1].Record != nil || list.List[1].HasExpire() {
		t.Fatalf("second record = %#v, want absent values and expiry", list.List[1])
	}

	if err := c.Create(ctx, "c.com"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := c.Update(ctx, "c.com", "d.com"); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := c.Delete(ctx, "d.com"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	want := []captured{
		{method: "GET", path: "/api"},
		{method: "POST", path: "/api", body: `{"domain":"c.com"}`, contentType: "application/json"},
		{method: "PUT", path: "/api/c.com/", body: `{"domain":"d.com"}`, contentType: "application/json"},
		{method: "DELETE", path: "/api/d.com/"},
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != len(want) {
		t.Fatalf("calls = %d, want %d", len(calls), len(want))
	}
	for i, w := range want {
		got := calls[i]
		if got.method != w.method || got.path != w.path || got.body != w.body || got.contentType != w.contentType {
			t.Fatalf("call %d = %+v, want %+v", i, got, w)
		}
		if !strings.HasPrefix(got.userAgent, "dnsdeck/") {
			t.Fatalf("User-Agent = %q, want dnsdeck/*", got.userAgent)
		}
	}
}

func TestClient_ListWithoutCollection(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{}`, `{"other":1}`, ``} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c, err := NewClient(server.URL, nil)
		if err != nil {
			t.Fatalf("NewClient returned error: %v", err)
		}
		list, err := c.List(context.Background())
		server.Close()
		if err != nil {
			t.Fatalf("List(%q) returned error: %v", body, err)
		}
		if list.HasList() {
			t.Fatalf("List(%q).HasList() = true, want false", body)
		}
	}
}

func TestClient_ListEmptyCollectionIsData(t *testing.T) {
	for _, body := range []string{`{"list":[]}`, `{"list":null}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c, _ := NewClient(server.URL, nil)
		list, err := c.List(context.Background())
		server.Close()
		if err != nil {
			t.Fatalf("List(%q) returned error: %v", body, err)
		}
		if !list.HasList() || len(list.List) != 0 {
			t.Fatalf("List(%q) = %#v, want present but empty", body, list)
		}
	}
}

func TestClient_ServerErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.Error(w, "nope", http.StatusInternalServerError)
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"400","message":"domain exists"}` + "\n"))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL, nil)

	_, err := c.List(context.Background())
	var se *ServerError
	if !errors.As(err, &se) || se.Status != 500 || se.Message != "nope" {
		t.Fatalf("List error = %v, want ServerError 500 nope", err)
	}

	err = c.Create(context.Background(), "a.com")
	if Message(err) != `{"code":"400","message":"domain exists"}` {
		t.Fatalf("Create message = %q", Message(err))
	}

	err = c.Delete(context.Background(), "a.com")
	if !IsServerError(err) || Message(err) != DefaultServerMessage {
		t.Fatalf("Delete error = %v, want empty body replaced by %q", err, DefaultServerMessage)
	}
	if IsTransportError(err) {
		t.Fatalf("Delete error should not be a transport error")
	}
}

func TestClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL, nil)
	_, err := c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("List error = %v, want decode response error", err)
	}
}

func TestClient_TransportErrorIsCountedByInstrumentation(t *testing.T) {
	inst := transport.NewInstrumented(&http.Client{Timeout: 200 * time.Millisecond})
	var started, ended int
	inst.Subscribe(observer{
		start: func() { started++ },
		end:   func() { ended++ },
	})

	c, err := NewClient("127.0.0.1:1", inst)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.List(context.Background())
	if !IsTransportError(err) {
		t.Fatalf("List error = %v, want TransportError", err)
	}
	if started != 1 || ended != 1 {
		t.Fatalf("started=%d ended=%d, want 1/1", started, ended)
	}
}

func TestDomainPathEscapes(t *testing.T) {
	if got := domainPath("a b/c"); got != "/api/a%20b%2Fc/" {
		t.Fatalf("domainPath = %q", got)
	}
}

type observer struct {
	start func()
	end   func()
}

func (o observer) CallStarted(transport.Call)      { o.start() }
func (o observer) CallEnded(transport.Call, error) { o.end() }
