package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/dnsdeck/internal/config"
	"github.com/five82/dnsdeck/internal/logging"
	"github.com/five82/dnsdeck/internal/notify"
	"github.com/five82/dnsdeck/internal/resolvex"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func apiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadConfig_AppliesOverrides(t *testing.T) {
	path := writeConfig(t, `
api_url = "10.0.0.1:9000"
poll_interval = "30s"
log_level = "warn"
`)

	cfg, err := LoadConfig(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.APIURL != "10.0.0.1:9000" || cfg.PollInterval != 30*time.Second || cfg.LogLevel != "warn" {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	cfg, err = LoadConfig(Options{
		ConfigPath: path,
		APIURL:     " 127.0.0.1:7000 ",
		PollEvery:  2 * time.Second,
		LogLevel:   "debug",
	})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.APIURL != "127.0.0.1:7000" {
		t.Fatalf("APIURL = %q, want override", cfg.APIURL)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfig_InvalidFileFails(t *testing.T) {
	path := writeConfig(t, `poll_interval = "soon"`)
	if _, err := LoadConfig(Options{ConfigPath: path}); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestOnce_ReturnsSortedSnapshot(t *testing.T) {
	srv := apiServer(t, http.StatusOK, `{"list":[
		{"domain":"b.com","record":["1.1.1.1"],"expire":null},
		{"domain":"a.com","record":["1.1.1.1","2.2.2.2","3.3.3.3"],"expire":"2026-01-02T03:04:05Z"}
	]}`)
	path := writeConfig(t, "")

	var logs bytes.Buffer
	snap, err := Once(context.Background(), Options{ConfigPath: path, APIURL: srv.URL, Stderr: &logs})
	if err != nil {
		t.Fatalf("Once returned error: %v", err)
	}
	if !snap.HasData {
		t.Fatal("expected snapshot with data")
	}
	if len(snap.Records) != 2 || snap.Records[0].Domain != "a.com" || snap.Records[1].Domain != "b.com" {
		t.Fatalf("records not sorted by value count: %+v", snap.Records)
	}
	if snap.TotalValues != 4 || snap.UniqueValues != 3 {
		t.Fatalf("aggregates = %d/%d, want 3/4", snap.UniqueValues, snap.TotalValues)
	}
}

func TestOnce_ServerErrorFails(t *testing.T) {
	srv := apiServer(t, http.StatusInternalServerError, `{"code":"500","message":"storage down"}`)
	path := writeConfig(t, "")

	_, err := Once(context.Background(), Options{ConfigPath: path, APIURL: srv.URL, Stderr: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !resolvex.IsServerError(err) {
		t.Fatalf("error %v does not wrap a server error", err)
	}
	if !strings.Contains(err.Error(), "storage down") {
		t.Fatalf("error %q missing server message", err)
	}
}

func TestOnce_MissingListHasNoData(t *testing.T) {
	srv := apiServer(t, http.StatusOK, `{}`)
	path := writeConfig(t, "")

	snap, err := Once(context.Background(), Options{ConfigPath: path, APIURL: srv.URL, Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Once returned error: %v", err)
	}
	if snap.HasData {
		t.Fatalf("expected no data, got %+v", snap)
	}
}

func TestOnce_InvalidAPIAddressFails(t *testing.T) {
	path := writeConfig(t, "")
	_, err := Once(context.Background(), Options{ConfigPath: path, APIURL: "http://[::1", Stderr: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected error for malformed api address")
	}
}

func TestEngineChanges_SignalsOnAlertsAndSync(t *testing.T) {
	srv := apiServer(t, http.StatusOK, `{"list":[{"domain":"a.com","record":["1.1.1.1"]}]}`)
	cfg := config.Default()
	cfg.APIURL = srv.URL

	eng, err := newEngine(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("newEngine returned error: %v", err)
	}
	defer eng.alerts.Close()
	changes := eng.changes()

	expectSignal := func(what string) {
		t.Helper()
		select {
		case <-changes:
		case <-time.After(time.Second):
			t.Fatalf("no change signal after %s", what)
		}
	}

	eng.alerts.Push(notify.KindSuccess, "added a.com")
	expectSignal("alert push")

	if err := eng.syncer.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	expectSignal("refresh")
	if !eng.store.Snapshot().HasData {
		t.Fatal("expected published snapshot")
	}

	// Signals coalesce; the buffer never holds more than one.
	eng.alerts.Push(notify.KindFailure, "x")
	eng.alerts.Push(notify.KindFailure, "y")
	expectSignal("second push")
	select {
	case <-changes:
		t.Fatal("expected coalesced signals")
	default:
	}
}

func TestLoadConfig_LogFormatOverride(t *testing.T) {
	path := writeConfig(t, `log_format = "json"`)

	cfg, err := LoadConfig(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.LogFormat != config.LogFormatJSON {
		t.Fatalf("LogFormat = %q, want json", cfg.LogFormat)
	}

	cfg, err = LoadConfig(Options{ConfigPath: path, LogFormat: " Console "})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.LogFormat != config.LogFormatConsole {
		t.Fatalf("LogFormat = %q, want console", cfg.LogFormat)
	}

	if _, err := LoadConfig(Options{ConfigPath: path, LogFormat: "xml"}); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestOnce_JSONLogs(t *testing.T) {
	srv := apiServer(t, http.StatusOK, `{"list":[]}`)
	path := writeConfig(t, `log_level = "debug"`)

	var logs bytes.Buffer
	_, err := Once(context.Background(), Options{
		ConfigPath: path,
		APIURL:     srv.URL,
		LogFormat:  "json",
		Stderr:     &logs,
	})
	if err != nil {
		t.Fatalf("Once returned error: %v", err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(logs.String()), "\n")
	if !strings.HasPrefix(first, "{") {
		t.Fatalf("expected JSON log lines, got %q", logs.String())
	}
}
