package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helmsman/internal/broker"
	"helmsman/internal/engine"
	"helmsman/internal/signal"
)

func newTestServer(t *testing.T) (*httptest.Server, *signal.Queue, *engine.StopTracker) {
	t.Helper()
	log := slog.Default()
	stops := engine.NewStopTracker(nil, log)
	queue := signal.NewQueue(nil, log)
	gw := broker.NewSimulatorGateway(100000)
	srv := NewServer(stops, queue, gw, nil, 100000, log)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, queue, stops
}

func TestSubmitAndListSignals(t *testing.T) {
	ts, queue, _ := newTestServer(t)

	body := `{"symbol":"aapl","action":"BUY","price":100,"stop_level":95,"source":"long_term"}`
	resp, err := http.Post(ts.URL+"/api/signals", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}
	if queue.Len() != 1 {
		t.Fatalf("queue.Len = %d, want 1", queue.Len())
	}

	// Symbol and action are normalized.
	listResp, err := http.Get(ts.URL + "/api/signals")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer listResp.Body.Close()
	var list SignalsResponse
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 1 || list.Signals[0].Symbol != "AAPL" {
		t.Errorf("list = %+v, want one AAPL signal", list)
	}
}

func TestSubmitSignalRejectsInvalid(t *testing.T) {
	ts, queue, _ := newTestServer(t)

	cases := []string{
		`not json`,
		`{"symbol":"AAPL","action":"buy","price":100,"stop_level":105,"source":"x"}`,
		`{"symbol":"","action":"buy","price":100,"stop_level":95}`,
	}
	for _, body := range cases {
		resp, err := http.Post(ts.URL+"/api/signals", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
	if queue.Len() != 0 {
		t.Errorf("queue.Len = %d after rejected posts, want 0", queue.Len())
	}
}

func TestDeleteSignal(t *testing.T) {
	ts, queue, _ := newTestServer(t)

	body := `{"symbol":"AAPL","action":"buy","price":100,"stop_level":95,"source":"long_term"}`
	resp, err := http.Post(ts.URL+"/api/signals", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/signals/AAPL", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", delResp.StatusCode)
	}
	if queue.Len() != 0 {
		t.Errorf("queue.Len = %d after delete, want 0", queue.Len())
	}

	// Deleting again is a 404.
	again, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	again.Body.Close()
	if again.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", again.StatusCode)
	}
}

func TestAccountEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/account")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var acct AccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if acct.Gateway != "simulator" || acct.Equity != 100000 || acct.PnL != 0 {
		t.Errorf("account = %+v, want simulator with equity 100000 and flat PnL", acct)
	}
}

func TestEventsWithoutJournal(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/events")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when no journal is configured", resp.StatusCode)
	}
}
