package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dojoenv/dojo-rl/config"
	"github.com/dojoenv/dojo-rl/engine"
	"github.com/dojoenv/dojo-rl/types"
)

type stubState struct {
	id string
}

func (s *stubState) Hash() string            { return s.id }
func (s *stubState) Actions() []types.Action { return []types.Action{&stubAction{"a"}} }

type stubAction struct {
	id string
}

func (a *stubAction) Hash() string { return a.id }

type stubEnv struct {
	step int
}

func (e *stubEnv) Reset() (types.State, error) {
	e.step = 0
	return &stubState{"s0"}, nil
}

func (e *stubEnv) Step(types.Action) (types.State, error) {
	e.step++
	return &stubState{fmt.Sprintf("s%d", e.step)}, nil
}

func newTestServer(t *testing.T) (*Server, *engine.Engine) {
	t.Helper()
	eng, err := engine.New(engine.Config{
		Horizon:     100,
		Hyperparams: config.Hyperparams{Alpha: 0.5, Gamma: 0.9, Epsilon: 0},
	}, &stubEnv{}, func(prev, next types.State) (float64, bool) { return 0, false })
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	go eng.Run()
	return New(":0", eng, nil), eng
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestStatusIdle(t *testing.T) {
	s, eng := newTestServer(t)
	defer eng.Stop()

	w := do(t, s, http.MethodGet, "/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"phase":"idle"`) {
		t.Errorf("status body = %s", w.Body.String())
	}
}

func TestControlLifecycle(t *testing.T) {
	s, eng := newTestServer(t)

	if w := do(t, s, http.MethodPost, "/control/start", ""); w.Code != http.StatusOK {
		t.Fatalf("start = %d: %s", w.Code, w.Body.String())
	}
	deadline := time.Now().Add(2 * time.Second)
	for eng.Phase() != engine.PhaseRunning && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if eng.Phase() != engine.PhaseRunning {
		t.Fatalf("engine never started running")
	}

	if w := do(t, s, http.MethodPost, "/control/pause", ""); w.Code != http.StatusOK {
		t.Fatalf("pause = %d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/control/stop", ""); w.Code != http.StatusOK {
		t.Fatalf("stop = %d", w.Code)
	}
	deadline = time.Now().Add(2 * time.Second)
	for eng.Phase() != engine.PhaseStopped && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	// every control is refused once stopped
	if w := do(t, s, http.MethodPost, "/control/start", ""); w.Code != http.StatusConflict {
		t.Errorf("start after stop = %d, want conflict", w.Code)
	}
}

func TestHyperparamsValidation(t *testing.T) {
	s, eng := newTestServer(t)
	defer eng.Stop()

	w := do(t, s, http.MethodPut, "/hyperparams", `{"alpha":0.3,"gamma":0.8,"epsilon":0.2}`)
	if w.Code != http.StatusOK {
		t.Errorf("valid hyperparams = %d: %s", w.Code, w.Body.String())
	}
	w = do(t, s, http.MethodPut, "/hyperparams", `{"alpha":2.0,"gamma":0.8,"epsilon":0.2}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("out-of-range alpha = %d, want 422", w.Code)
	}
	w = do(t, s, http.MethodPut, "/hyperparams", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body = %d, want 400", w.Code)
	}
}

func TestTelemetryLatestEmpty(t *testing.T) {
	s, eng := newTestServer(t)
	defer eng.Stop()

	if w := do(t, s, http.MethodGet, "/telemetry/latest", ""); w.Code != http.StatusNoContent {
		t.Errorf("latest with no events = %d, want 204", w.Code)
	}
}
