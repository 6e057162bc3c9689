package fieldserv

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/wiltonos/field-viz/pkg/field"
	"github.com/wiltonos/field-viz/pkg/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server owns the synthetic generator and fans its samples out to HTTP and
// websocket consumers. The coherence log is optional; without it the history
// endpoint serves only the in-memory window.
type Server struct {
	cfg Config
	gen *field.Generator
	log *store.Log
	m   *Metrics

	mu     sync.RWMutex
	latest field.Sample
	window []field.Sample // in-memory fallback history, newest last
}

func NewServer(cfg Config, gen *field.Generator, log *store.Log) *Server {
	return &Server{
		cfg: cfg,
		gen: gen,
		log: log,
		m:   NewMetrics(),
	}
}

// SetupMux handles all data serving:
// - Prometheus metric endpoint
// - Websocket stream for the dashboard
// - Latest sample and history for programmatic use
func (s *Server) SetupMux() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", s.m.Handler())
	r.HandleFunc("/ws", s.WebsocketHandler)
	r.HandleFunc("/api/field", s.FieldHandler)
	r.HandleFunc("/api/field/history", s.HistoryHandler)
	return r
}

// Run steps the generator at the configured cadence until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Cadence())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

func (s *Server) step() {
	sample := s.gen.Step()

	s.mu.Lock()
	s.latest = sample
	s.window = append(s.window, sample)
	if limit := s.cfg.HistoryLimit; limit > 0 && len(s.window) > limit {
		s.window = s.window[len(s.window)-limit:]
	}
	s.mu.Unlock()

	s.m.Coherence.Set(sample.Coherence)
	s.m.IntegratedInfo.Set(sample.IntegratedInfo)
	s.m.Phase.Set(sample.Phase)
	s.m.Samples.Inc()

	if s.log != nil {
		if err := s.log.Append(sample); err != nil {
			slog.Error("could not append to coherence log", slog.Any("Error", err))
		}
	}
}

// Latest returns the most recent sample and whether one exists yet.
func (s *Server) Latest() (field.Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, !s.latest.Timestamp.IsZero()
}

func (s *Server) FieldHandler(w http.ResponseWriter, r *http.Request) {
	sample, ok := s.Latest()
	if !ok {
		http.Error(w, "no samples yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sample); err != nil {
		slog.Error("could not encode sample", slog.Any("Error", err))
	}
}

func (s *Server) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.HistoryLimit
	if limit <= 0 {
		limit = 120
	}
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		if n < limit {
			limit = n
		}
	}

	var (
		samples []field.Sample
		err     error
	)
	if s.log != nil {
		samples, err = s.log.Recent(limit)
		if err != nil {
			slog.Error("could not read coherence log", slog.Any("Error", err))
			http.Error(w, "history unavailable", http.StatusInternalServerError)
			return
		}
	} else {
		s.mu.RLock()
		start := len(s.window) - limit
		if start < 0 {
			start = 0
		}
		// Newest first, matching the log-backed path.
		for i := len(s.window) - 1; i >= start; i-- {
			samples = append(samples, s.window[i])
		}
		s.mu.RUnlock()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(samples); err != nil {
		slog.Error("could not encode history", slog.Any("Error", err))
	}
}

// WebsocketHandler streams coherence_update frames to a subscriber at the
// generator cadence. Each connection gets its own ticker; a write failure
// means the client went away.
func (s *Server) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.m.WSClients.Inc()
	defer s.m.WSClients.Dec()

	ticker := time.NewTicker(s.cfg.Cadence())
	defer ticker.Stop()
	for range ticker.C {
		sample, ok := s.Latest()
		if !ok {
			continue
		}
		data, err := json.Marshal(sample)
		if err != nil {
			slog.Error("could not marshal sample", slog.Any("Error", err))
			continue
		}
		env := field.Envelope{Type: "coherence_update", Data: data}
		if err := conn.WriteJSON(env); err != nil {
			return // Connection closed
		}
	}
}
