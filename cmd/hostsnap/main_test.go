package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeAPI struct {
	mu      sync.Mutex
	uploads map[string]string
	calls   int
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{uploads: map[string]string{}}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.calls++
			f.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/host/all", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []string{"10.0.0.5", "10.0.0.6"})
	})
	r.Get("/api/host", func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Query().Get("ip") {
		case "10.0.0.5":
			writeJSON(w, []string{"2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"})
		case "10.0.0.6":
			http.Error(w, "database unavailable", http.StatusInternalServerError)
		default:
			writeJSON(w, []string{})
		}
	})
	r.Get("/api/snapshot", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hostname":"web-1","packages":["nginx"]}`)
	})
	r.Get("/api/snapshot/diff", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{
			"DiffStatus":  "different",
			"Differences": "\x1b[0;31m-  \"kernel\": \"6.0\"\x1b[0m\n\x1b[0;32m+  \"kernel\": \"6.1\"\x1b[0m\n",
		})
	})
	r.Post("/api/snapshot", func(w http.ResponseWriter, req *http.Request) {
		file, header, err := req.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, dup := f.uploads[header.Filename]; dup {
			http.Error(w, "snapshot already exists", http.StatusConflict)
			return
		}
		f.uploads[header.Filename] = string(body)
		w.WriteHeader(http.StatusCreated)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAPI) uploaded(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads[name]
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// execute runs the CLI against api and returns stdout, stderr and the error.
func execute(t *testing.T, api string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	full := append([]string{
		"--config", filepath.Join(t.TempDir(), "missing.toml"),
		"--api", api,
	}, args...)
	cmd.SetArgs(full)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestHostsCommand(t *testing.T) {
	_, api := newFakeAPI(t)

	out, _, err := execute(t, api, "hosts")
	require.NoError(t, err)
	assert.Contains(t, out, "Host")
	assert.Less(t, strings.Index(out, "10.0.0.5"), strings.Index(out, "10.0.0.6"))
}

func TestHostsCountReportsPerHostFailures(t *testing.T) {
	_, api := newFakeAPI(t)

	out, stderr, err := execute(t, api, "hosts", "--count")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Snapshots")
	assert.Regexp(t, `10\.0\.0\.5\s+2`, lines[1])
	assert.Regexp(t, `10\.0\.0\.6\s+error`, lines[2])
	assert.Contains(t, stderr, "list timestamps failed")
}

func TestTimestampsCommand(t *testing.T) {
	_, api := newFakeAPI(t)

	out, _, err := execute(t, api, "timestamps", "10.0.0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-01T00:00:00Z")
	assert.Contains(t, out, "2024-01-02T00:00:00Z")

	out, _, err = execute(t, api, "timestamps", "10.9.9.9")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots for 10.9.9.9.")
}

func TestTimestampsCommandWrapsAPIError(t *testing.T) {
	_, api := newFakeAPI(t)

	_, _, err := execute(t, api, "timestamps", "10.0.0.6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list timestamps of 10.0.0.6")
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestShowCommand(t *testing.T) {
	_, api := newFakeAPI(t)

	out, _, err := execute(t, api, "show", "10.0.0.5", "2024-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"hostname\": \"web-1\",\n  \"packages\": [\n    \"nginx\"\n  ]\n}\n", out)

	out, _, err = execute(t, api, "show", "10.0.0.5", "2024-01-01T00:00:00Z", "--yaml")
	require.NoError(t, err)
	assert.Equal(t, "hostname: web-1\npackages:\n  - nginx\n", out)
}

func TestDiffCommandNoColor(t *testing.T) {
	_, api := newFakeAPI(t)

	out, _, err := execute(t, api, "diff", "10.0.0.5", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "--no-color")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "DIFFERENT  10.0.0.5  2024-01-01T00:00:00Z → 2024-01-02T00:00:00Z\n"), out)
	assert.Contains(t, out, "-  \"kernel\": \"6.0\"\n+  \"kernel\": \"6.1\"\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestDiffCommandRejectsSameTimestamp(t *testing.T) {
	f, api := newFakeAPI(t)

	_, _, err := execute(t, api, "diff", "10.0.0.5", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z")
	require.Error(t, err)
	assert.Equal(t, 0, f.callCount())
}

func TestUploadCommand(t *testing.T) {
	f, api := newFakeAPI(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "host_10.0.0.5_2024-01-15T10-30-00Z.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"hostname":"web-1"}`), 0o644))

	out, _, err := execute(t, api, "upload", good)
	require.NoError(t, err)
	assert.Contains(t, out, "host_10.0.0.5_2024-01-15T10-30-00Z.json  10.0.0.5  2024-01-15 10:30:00 UTC")
	assert.Equal(t, `{"hostname":"web-1"}`, f.uploaded("host_10.0.0.5_2024-01-15T10-30-00Z.json"))
}

func TestUploadCommandValidatesBeforeSending(t *testing.T) {
	f, api := newFakeAPI(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "host_192.168.1.1_2024-01-15_10-30-00.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{}`), 0o644))
	notes := filepath.Join(dir, "notes.json")

	out, _, err := execute(t, api, "upload", bad, notes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 uploads failed")
	assert.Contains(t, out, "timestamp is malformed")
	assert.Contains(t, out, "name must start with host_")
	assert.Equal(t, 0, f.callCount())
}

func TestUploadCommandReportsConflict(t *testing.T) {
	_, api := newFakeAPI(t)
	path := filepath.Join(t.TempDir(), "host_10.0.0.5_2024-01-15T10-30-00Z.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, _, err := execute(t, api, "upload", path)
	require.NoError(t, err)

	out, _, err := execute(t, api, "upload", path)
	require.Error(t, err)
	assert.Contains(t, out, "snapshot already exists")
}

func TestLogsCommand(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "hostsnap.log")
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Join([]string{
		`time=t1 level=INFO msg="hostsnap starting"`,
		`time=t2 level=DEBUG msg="stale response dropped"`,
		`time=t3 level=WARN msg="fetch failed"`,
	}, "\n")+"\n"), 0o644))
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_file = \""+logPath+"\"\n"), 0o644))

	out, _, err := execute(t, "127.0.0.1:1", "--config", cfgPath, "logs", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "time=t2 level=DEBUG msg=\"stale response dropped\"\ntime=t3 level=WARN msg=\"fetch failed\"\n", out)

	out, _, err = execute(t, "127.0.0.1:1", "--config", cfgPath, "logs", "--level", "warn")
	require.NoError(t, err)
	assert.Equal(t, "time=t3 level=WARN msg=\"fetch failed\"\n", out)
}

func TestLogsCommandWithoutLogFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	logPath := filepath.Join(dir, "absent.log")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_file = \""+logPath+"\"\n"), 0o644))

	out, _, err := execute(t, "127.0.0.1:1", "--config", cfgPath, "logs")
	require.NoError(t, err)
	assert.Equal(t, "No log entries in "+logPath+".\n", out)
}

func TestHealthCommand(t *testing.T) {
	_, api := newFakeAPI(t)

	out, _, err := execute(t, api, "health")
	require.NoError(t, err)
	assert.Contains(t, out, api+" is up")

	_, _, err = execute(t, "127.0.0.1:1", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check http://127.0.0.1:1")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "127.0.0.1:1", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hostsnap version "), out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "127.0.0.1:1", "--log-level", "verbose", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}
