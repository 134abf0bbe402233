package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mertakman/go-sessionsense/pkg/engine"
	"github.com/mertakman/go-sessionsense/pkg/heuristics"
	"github.com/mertakman/go-sessionsense/pkg/models"
	"github.com/mertakman/go-sessionsense/pkg/storage"
)

func setupTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	eng := engine.New(nil, store)
	eng.AddHeuristic(heuristics.DefaultTypingTempo())
	eng.AddHeuristic(heuristics.DefaultInputAutomation())
	eng.AddHeuristic(heuristics.NewDeviceClass())

	server := NewServer(eng, store, nil)
	return server, server.Router()
}

func openSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("open session status = %d, want 201", w.Code)
	}
	var resp sessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a non-empty session id")
	}
	return resp.SessionID
}

func postJSON(router *gin.Engine, url string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleHealthz(t *testing.T) {
	_, router := setupTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz = %d %q, want 200 ok", w.Code, w.Body.String())
	}
}

func TestHandleEventsSuccess(t *testing.T) {
	_, router := setupTestServer(t)
	id := openSession(t, router)

	batch := Batch{Events: []Event{
		{Type: "keydown", Key: "a", TimestampMs: 1000},
		{Type: "keydown", Key: "b", TimestampMs: 1213},
		{Type: "pointermove", X: 10, Y: 20, TimestampMs: 1100},
		{Type: "scroll", Offset: 140, TimestampMs: 1200},
		{Type: "device", TimestampMs: 1300, Signals: &models.DeviceSignals{Platform: "Win32", HardwareConcurrency: 8}},
	}}

	w := postJSON(router, "/api/v1/sessions/"+id+"/events", batch)
	if w.Code != http.StatusNoContent {
		t.Fatalf("events status = %d, want 204 (body %s)", w.Code, w.Body.String())
	}
}

func TestHandleEventsUnknownSession(t *testing.T) {
	_, router := setupTestServer(t)
	batch := Batch{Events: []Event{{Type: "keydown", Key: "a", TimestampMs: 1}}}
	w := postJSON(router, "/api/v1/sessions/nope/events", batch)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleEventsRejectsInvalidPayloads(t *testing.T) {
	_, router := setupTestServer(t)
	id := openSession(t, router)

	tests := []struct {
		name string
		body any
	}{
		{"invalid event type", Batch{Events: []Event{{Type: "telepathy", TimestampMs: 1}}}},
		{"missing timestamp", Batch{Events: []Event{{Type: "keydown", Key: "a"}}}},
		{"empty batch", Batch{Events: []Event{}}},
		{"not json at all", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/v1/sessions/"+id+"/events", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestHandleAnalyze(t *testing.T) {
	_, router := setupTestServer(t)
	id := openSession(t, router)

	// Irregular, human-looking typing: ~150ms mean with jitter.
	events := make([]Event, 0, 16)
	ts := int64(1000)
	for i, gap := range []int64{151, 142, 163, 139, 158, 171, 133, 149, 166, 137, 154, 161} {
		ts += gap
		events = append(events, Event{Type: "keydown", Key: fmt.Sprintf("k%d", i), TimestampMs: ts})
	}
	events = append(events, Event{
		Type: "device", TimestampMs: ts,
		Signals: &models.DeviceSignals{
			WebGLRenderer:       "ANGLE (Intel, Intel(R) UHD Graphics 630)",
			HardwareConcurrency: 8,
			Platform:            "Win32",
			Language:            "en-US",
			CanvasHash:          "c4a1",
		},
	})

	if w := postJSON(router, "/api/v1/sessions/"+id+"/events", Batch{Events: events}); w.Code != http.StatusNoContent {
		t.Fatalf("events status = %d", w.Code)
	}

	w := postJSON(router, "/api/v1/sessions/"+id+"/analyze", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d (body %s)", w.Code, w.Body.String())
	}

	var report models.TraitReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.SessionID != id {
		t.Errorf("report session = %q, want %q", report.SessionID, id)
	}
	if report.Labels[models.TraitAgeRange] != "18-30" {
		t.Errorf("age range = %q, want 18-30", report.Labels[models.TraitAgeRange])
	}
	if report.Labels[models.TraitAutomation] != "organic" {
		t.Errorf("automation = %q, want organic", report.Labels[models.TraitAutomation])
	}
	if report.Labels[models.TraitDeviceClass] != "desktop" {
		t.Errorf("device class = %q, want desktop", report.Labels[models.TraitDeviceClass])
	}
}

func TestHandleAnalyzeUnknownSession(t *testing.T) {
	_, router := setupTestServer(t)
	w := postJSON(router, "/api/v1/sessions/ghost/analyze", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleStreamWebsocket(t *testing.T) {
	server, router := setupTestServer(t)
	id := openSession(t, router)

	ts := httptest.NewServer(router)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/sessions/" + id + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	timestamps := []int64{1000, 1180, 1420, 1630}
	for _, tsMs := range timestamps {
		if err := conn.WriteJSON(Event{Type: "keydown", Key: "x", TimestampMs: tsMs}); err != nil {
			t.Fatalf("write event: %v", err)
		}
	}
	err = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reads happen on the server's connection goroutine; poll briefly.
	sess, ok := server.session(id)
	if !ok {
		t.Fatal("session vanished")
	}
	var got int
	for i := 0; i < 100; i++ {
		if got = len(sess.Keystrokes()); got == len(timestamps) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got != len(timestamps) {
		t.Errorf("streamed keystrokes = %d, want %d", got, len(timestamps))
	}
}

func TestHandleStreamUnknownSession(t *testing.T) {
	_, router := setupTestServer(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/ghost/stream", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
