package helmsman

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientPositions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/positions" {
			t.Errorf("path = %q, want /api/positions", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"count": 1,
			"positions": []map[string]any{
				{"symbol": "AAPL", "entry_price": 100.5, "stop_level": 95, "source": "long_term"},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	positions, err := c.Positions(context.Background())
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if len(positions) != 1 || positions[0].Symbol != "AAPL" || positions[0].StopLevel != 95 {
		t.Errorf("positions = %+v, want one AAPL at stop 95", positions)
	}
}

func TestClientSubmitSignal(t *testing.T) {
	var got Signal
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/signals" {
			t.Errorf("%s %s, want POST /api/signals", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	err := c.SubmitSignal(context.Background(), Signal{
		Symbol: "TSLA", Action: "sell", Price: 240, StopLevel: 250, Source: "short_term",
	})
	if err != nil {
		t.Fatalf("SubmitSignal: %v", err)
	}
	if got.Symbol != "TSLA" || got.StopLevel != 250 {
		t.Errorf("server received %+v", got)
	}
}

func TestClientSurfacesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "buy stop 105 must be below entry 100"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	err := c.SubmitSignal(context.Background(), Signal{Symbol: "AAPL"})
	if err == nil {
		t.Fatal("SubmitSignal should fail")
	}
	if want := "buy stop 105 must be below entry 100"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to contain %q", err, want)
	}
}

func TestClientDeleteSignal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/signals/AAPL" {
			t.Errorf("%s %s, want DELETE /api/signals/AAPL", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	if err := NewClient(ts.URL).DeleteSignal(context.Background(), "AAPL"); err != nil {
		t.Fatalf("DeleteSignal: %v", err)
	}
}
