// Package web provides an HTTP status endpoint for the magmeter daemon.
// It serves machine-readable JSON plus a plain-text summary; there is no UI.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sweeney/magmeter/internal/status"
)

// Server serves the daemon status over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
}

// New creates a Server that reads state from the given tracker.
func New(addr string, tracker *status.Tracker) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writeSummary(w, snap)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}

func writeSummary(w http.ResponseWriter, snap status.Snapshot) {
	ind := "OFF"
	if snap.IndicatorOn {
		ind = "ON"
	}
	cal := "pending"
	if snap.Calibration.Done {
		cal = fmt.Sprintf("bias (%d, %d, %d), %d/%d samples",
			snap.Calibration.Bias.X, snap.Calibration.Bias.Y, snap.Calibration.Bias.Z,
			snap.Calibration.Observed, snap.Calibration.Expected)
	}
	mqtt := "disconnected"
	if snap.MQTTConnected {
		mqtt = "connected"
	}

	fmt.Fprintf(w, "magmeter\n")
	fmt.Fprintf(w, "uptime:       %v\n", snap.Uptime().Truncate(time.Second))
	fmt.Fprintf(w, "calibration:  %s\n", cal)
	fmt.Fprintf(w, "field:        %.1f mG raw, %.1f mG smoothed\n", snap.Raw, snap.Smoothed)
	fmt.Fprintf(w, "servo:        %.1f deg\n", snap.Position)
	fmt.Fprintf(w, "indicator:    %s (period %v)\n", ind, snap.BlinkPeriod)
	fmt.Fprintf(w, "mqtt:         %s (%s)\n", mqtt, snap.Config.Broker)
	fmt.Fprintf(w, "cycles:       %d ok, %d skipped, %d spikes, %d toggles\n",
		snap.Counts.Cycles, snap.Counts.Skipped, snap.Counts.Spikes, snap.Counts.Toggles)
}
