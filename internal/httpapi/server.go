package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"helmsman/internal/broker"
	"helmsman/internal/domain"
	"helmsman/internal/engine"
	"helmsman/internal/signal"
	"helmsman/internal/store"
)

// Server serves the engine's REST API.
type Server struct {
	stops   *engine.StopTracker
	queue   *signal.Queue
	gw      broker.Gateway
	journal store.Journal // may be nil
	cfgBase float64       // capital base for the account PnL field
	log     *slog.Logger
}

// NewServer creates the REST API server. journal may be nil.
func NewServer(
	stops *engine.StopTracker,
	queue *signal.Queue,
	gw broker.Gateway,
	journal store.Journal,
	capitalBase float64,
	log *slog.Logger,
) *Server {
	return &Server{
		stops:   stops,
		queue:   queue,
		gw:      gw,
		journal: journal,
		cfgBase: capitalBase,
		log:     log,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/positions", s.handlePositions)
	mux.HandleFunc("GET /api/signals", s.handleSignals)
	mux.HandleFunc("POST /api/signals", s.handleSubmitSignal)
	mux.HandleFunc("DELETE /api/signals/{symbol}", s.handleDeleteSignal)
	mux.HandleFunc("GET /api/account", s.handleAccount)
	mux.HandleFunc("GET /api/events", s.handleEvents)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	positions := s.stops.Snapshot()
	writeJSON(w, PositionsResponse{Count: len(positions), Positions: positions})
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	signals := s.queue.Snapshot()
	writeJSON(w, SignalsResponse{Count: len(signals), Signals: signals})
}

func (s *Server) handleSubmitSignal(w http.ResponseWriter, r *http.Request) {
	var req SubmitSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sig := domain.Signal{
		Symbol:    strings.ToUpper(req.Symbol),
		Action:    domain.SignalAction(strings.ToLower(req.Action)),
		Price:     req.Price,
		StopLevel: req.StopLevel,
		Source:    req.Source,
		CreatedAt: time.Now(),
	}
	if err := s.queue.Add(r.Context(), sig); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, sig)
}

func (s *Server) handleDeleteSignal(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))
	if _, ok := s.queue.Pending()[symbol]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no pending signal for %s", symbol))
		return
	}
	s.queue.Remove(r.Context(), symbol)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := s.gw.GetAccount(r.Context())
	if err != nil {
		s.log.Error("fetching account", "error", err)
		writeError(w, http.StatusBadGateway, "account unavailable")
		return
	}
	writeJSON(w, AccountResponse{
		Gateway:     s.gw.Name(),
		Equity:      acct.Equity,
		LastEquity:  acct.LastEquity,
		Cash:        acct.Cash,
		BuyingPower: acct.BuyingPower,
		PnL:         acct.PnL(s.cfgBase),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		writeError(w, http.StatusServiceUnavailable, "journal not configured")
		return
	}

	date := r.URL.Query().Get("date")
	day := time.Now()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	events, err := s.journal.ReadDay(r.Context(), day)
	if err != nil {
		s.log.Error("reading journal", "date", day.Format("2006-01-02"), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read journal")
		return
	}

	out := make([]EventJSON, 0, len(events))
	for _, evt := range events {
		out = append(out, convertEvent(evt))
	}
	writeJSON(w, EventsResponse{
		Date:   day.Format("2006-01-02"),
		Count:  len(out),
		Events: out,
	})
}
