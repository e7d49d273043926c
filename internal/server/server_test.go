package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/config"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/logging"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

// The metrics collectors register on the default Prometheus registry, so
// this package builds exactly one Server across its whole test binary.
func TestServerServesRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"

	srv, err := New(cfg)
	require.NoError(t, err)
	defer srv.Close()

	router := srv.Router()

	t.Run("banner and health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Tracer-Instance"))
		assert.Contains(t, w.Header().Get("X-Trace-ID"), "req_")

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("record and report", func(t *testing.T) {
		body := `{"messageId": "m1", "chainId": "c1", "event": "pdf:open:requested", "timestamp": 100}`
		req := httptest.NewRequest("POST", "/traces", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/chains/c1/report", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"reportId":"rpt_`)
	})

	t.Run("prometheus scrape", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "tracer_messages_recorded_total")
	})

	t.Run("panel", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/panel", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	})
}

func TestSweeperPrunesExpiredRecords(t *testing.T) {
	store := trace.NewStore(trace.Config{MaxTraceSize: 10}, nil)
	defer store.Destroy()

	store.Record(&trace.Record{MessageID: "ancient", ChainID: "c1", Timestamp: 1000})

	sw := newSweeper(store, logging.NewNop(), time.Millisecond, 10*time.Millisecond)
	go sw.run()
	defer sw.Close()

	deadline := time.Now().Add(2 * time.Second)
	for store.Status().TotalMessages > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, store.Status().TotalMessages)
}

func TestSweeperCloseStopsLoop(t *testing.T) {
	store := trace.NewStore(trace.Config{MaxTraceSize: 10}, nil)
	defer store.Destroy()

	sw := newSweeper(store, logging.NewNop(), time.Minute, time.Hour)
	go sw.run()

	done := make(chan struct{})
	go func() {
		sw.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
