package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/dnsdeck/internal/export"
)

const listBody = `{"list":[
	{"domain":"b.com","record":["1.1.1.1"]},
	{"domain":"a.com","record":["1.1.1.1","2.2.2.2"]}
]}`

// execute runs the root command with args against an isolated HOME and
// returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func apiServer(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if !strings.HasPrefix(out, "dnsdeck dev\n") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestStats_PrintsAggregates(t *testing.T) {
	api := apiServer(t, listBody)

	out, err := execute(t, "stats", "--api", api)
	if err != nil {
		t.Fatalf("stats returned error: %v", err)
	}
	for _, want := range []string{
		"Records:       2",
		"Domains:       2",
		"Resolved:      2",
		"Values:        3",
		"Unique values: 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestStats_RejectsUnknownLogFormat(t *testing.T) {
	api := apiServer(t, listBody)

	if _, err := execute(t, "stats", "--api", api, "--log-format", "xml"); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestExport_TextToStdout(t *testing.T) {
	api := apiServer(t, listBody)

	out, err := execute(t, "export", "--api", api)
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if out != "a.com,b.com" {
		t.Fatalf("export output = %q, want %q", out, "a.com,b.com")
	}
}

func TestExport_JSONToFile(t *testing.T) {
	api := apiServer(t, listBody)
	path := filepath.Join(t.TempDir(), "domains.json")

	if _, err := execute(t, "export", "--api", api, "-f", "json", "-o", path); err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "[\n  \"a.com\",\n  \"b.com\"\n]\n"
	if string(data) != want {
		t.Fatalf("export file = %q, want %q", data, want)
	}
}

func TestExport_NoData(t *testing.T) {
	api := apiServer(t, `{}`)

	_, err := execute(t, "export", "--api", api)
	if !errors.Is(err, export.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := execute(t, "export", "-f", "csv")
	if err == nil || !strings.Contains(err.Error(), "unknown export format") {
		t.Fatalf("err = %v, want unknown format error", err)
	}
}
