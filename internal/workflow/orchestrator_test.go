package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/api"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/config"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/exitcode"
)

// fakeVendor simulates the vendor REST surface. Each operation id gets its
// own scripted status sequence via opScript(callNumber).
type fakeVendor struct {
	mu                sync.Mutex
	opCalls           map[string]int
	opScript          func(call int) (httpStatus int, status string)
	createdIterations int
	srv               *httptest.Server
}

func newFakeVendor(opScript func(call int) (int, string)) *fakeVendor {
	v := &fakeVendor{opCalls: map[string]int{}, opScript: opScript}
	v.srv = httptest.NewServer(http.HandlerFunc(v.handle))
	return v
}

func (v *fakeVendor) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/videotranslation")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case parts[0] == "operations" && len(parts) == 2:
		v.mu.Lock()
		v.opCalls[parts[1]]++
		call := v.opCalls[parts[1]]
		v.mu.Unlock()
		httpStatus, status := v.opScript(call)
		if httpStatus != http.StatusOK {
			w.WriteHeader(httpStatus)
			return
		}
		json.NewEncoder(w).Encode(api.Operation{ID: parts[1], Status: status})

	case parts[0] == "translations" && len(parts) == 2 && r.Method == http.MethodPut:
		json.NewEncoder(w).Encode(api.Translation{ID: parts[1], Status: api.StatusNotStarted})

	case parts[0] == "translations" && len(parts) == 2 && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(api.Translation{ID: parts[1], Status: api.StatusSucceeded})

	case parts[0] == "translations" && len(parts) == 4 && r.Method == http.MethodPut:
		v.mu.Lock()
		v.createdIterations++
		v.mu.Unlock()
		json.NewEncoder(w).Encode(api.Iteration{ID: parts[3], Status: api.StatusNotStarted})

	case parts[0] == "translations" && len(parts) == 4 && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(api.Iteration{
			ID:     parts[3],
			Status: api.StatusSucceeded,
			Result: &api.IterationResult{
				TargetLocaleSubtitleWebvttFileURL: v.srv.URL + "/files/target.vtt",
			},
		})

	case parts[0] == "files":
		w.Write([]byte("WEBVTT"))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func testOrchestrator(t *testing.T, v *fakeVendor) *Orchestrator {
	t.Helper()
	t.Cleanup(v.srv.Close)

	cfg := config.NewDefaultConfig()
	cfg.Endpoint = v.srv.URL
	cfg.SubscriptionKey = "test-key"
	cfg.OutputDir = t.TempDir()
	cfg.PollInterval = time.Millisecond
	cfg.MaxWait = time.Second
	cfg.MaxRetries = 1
	cfg.RetryBaseDelay = time.Millisecond

	return New(cfg)
}

func testRequest() Request {
	return Request{
		TranslationID: "job-1",
		DisplayName:   "demo",
		Input: api.TranslationInput{
			SourceLocale: "en-US",
			TargetLocale: "es-ES",
			VideoFileURL: "https://example.com/video.mp4",
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	t.Run("succeeds after two running polls per operation", func(t *testing.T) {
		v := newFakeVendor(func(call int) (int, string) {
			if call <= 2 {
				return http.StatusOK, api.StatusRunning
			}
			return http.StatusOK, api.StatusSucceeded
		})
		o := testOrchestrator(t, v)

		code := o.Run(context.Background(), testRequest())

		assert.Equal(t, exitcode.Success, code)
		assert.Equal(t, 1, v.createdIterations)

		// Artifacts landed under {outputDir}/{translationID}/{iterationID}.
		entries, err := os.ReadDir(filepath.Join(o.Cfg.OutputDir, "job-1"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		iterDir := filepath.Join(o.Cfg.OutputDir, "job-1", entries[0].Name())
		for _, name := range []string{"translation.json", "iteration.json", "target.vtt"} {
			_, err := os.Stat(filepath.Join(iterDir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("poll call failures are retried without aborting the workflow", func(t *testing.T) {
		// First two status checks per operation answer 404, which the
		// transport does not retry, so the poller itself has to absorb it.
		v := newFakeVendor(func(call int) (int, string) {
			if call <= 2 {
				return http.StatusNotFound, ""
			}
			if call == 3 {
				return http.StatusOK, api.StatusRunning
			}
			return http.StatusOK, api.StatusSucceeded
		})
		o := testOrchestrator(t, v)

		code := o.Run(context.Background(), testRequest())

		assert.Equal(t, exitcode.Success, code)
	})

	t.Run("a failed translation aborts before the iteration is submitted", func(t *testing.T) {
		v := newFakeVendor(func(call int) (int, string) {
			return http.StatusOK, api.StatusFailed
		})
		o := testOrchestrator(t, v)

		code := o.Run(context.Background(), testRequest())

		assert.Equal(t, exitcode.OperationFailed, code)
		assert.Equal(t, 0, v.createdIterations)
	})

	t.Run("a cancelled operation maps to its own exit code", func(t *testing.T) {
		v := newFakeVendor(func(call int) (int, string) {
			return http.StatusOK, api.StatusCancelled
		})
		o := testOrchestrator(t, v)

		assert.Equal(t, exitcode.OperationCancelled, o.Run(context.Background(), testRequest()))
	})

	t.Run("an interval larger than the budget times out without a terminal status", func(t *testing.T) {
		v := newFakeVendor(func(call int) (int, string) {
			return http.StatusOK, api.StatusRunning
		})
		o := testOrchestrator(t, v)
		o.Poller.Interval = 30 * time.Second
		o.Poller.MaxWait = time.Second

		start := time.Now()
		code := o.Run(context.Background(), testRequest())

		assert.Equal(t, exitcode.OperationTimedOut, code)
		assert.Less(t, time.Since(start), 5*time.Second)
		assert.Equal(t, 0, v.createdIterations)
	})
}

func TestCreateOnly(t *testing.T) {
	t.Run("creates and polls without iterating", func(t *testing.T) {
		v := newFakeVendor(func(call int) (int, string) {
			return http.StatusOK, api.StatusSucceeded
		})
		o := testOrchestrator(t, v)

		code := o.CreateOnly(context.Background(), testRequest())

		assert.Equal(t, exitcode.Success, code)
		assert.Equal(t, 0, v.createdIterations)
	})
}

func TestIterate(t *testing.T) {
	t.Run("runs a refinement pass over an existing translation", func(t *testing.T) {
		v := newFakeVendor(func(call int) (int, string) {
			return http.StatusOK, api.StatusSucceeded
		})
		o := testOrchestrator(t, v)

		input := &api.IterationInput{WebvttFile: &api.WebvttFile{
			URL:  "https://example.com/edited.vtt",
			Kind: "TargetLocaleSubtitle",
		}}
		code := o.Iterate(context.Background(), "job-1", input)

		assert.Equal(t, exitcode.Success, code)
		assert.Equal(t, 1, v.createdIterations)
	})
}

func TestRun_Interrupted(t *testing.T) {
	t.Run("a cancelled context maps to the interrupt exit code", func(t *testing.T) {
		v := newFakeVendor(func(call int) (int, string) {
			return http.StatusOK, api.StatusRunning
		})
		o := testOrchestrator(t, v)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Equal(t, exitcode.Interrupted, o.Run(ctx, testRequest()))
	})
}
