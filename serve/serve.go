// Copyright © 2025 The Procwatch Project.

package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zosmac/gocore"
	"github.com/zosmac/procwatch/analyze"
	"github.com/zosmac/procwatch/process"
	"github.com/zosmac/procwatch/store"
	"golang.org/x/net/websocket"
)

// Server serves the latest process snapshot, per-process actions, and the process log.
type Server struct {
	sampler *process.Sampler
	manager *process.Manager
	path    string
	top     int

	latest  Snapshot
	lock    sync.RWMutex
	updates chan Snapshot

	measures measurement
}

// New creates a Server over a process Source and the process log at path.
func New(source process.Source, path string, top int) *Server {
	return &Server{
		sampler: process.NewSampler(source),
		manager: process.NewManager(source),
		path:    path,
		top:     top,
		updates: make(chan Snapshot, 1),
	}
}

// Handler returns the request multiplexer for the Server's endpoints.
func (s *Server) Handler() http.Handler {
	// the default registry adds Go runtime metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(&collector{server: s})

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /processes", s.processes)
	mux.HandleFunc("GET /inspect", s.inspect)
	mux.HandleFunc("POST /terminate", s.terminate)
	mux.HandleFunc("GET /summary", s.summary)
	mux.HandleFunc("GET /history", s.history)
	mux.Handle("/ws", s.websocket())

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.measures.HTTPRequests.Add(1)
		w.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		mux.ServeHTTP(w, r)
	})
}

// processes responds with the latest snapshot.
func (s *Server) processes(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, s.Latest())
}

// inspect responds with the full detail of one process.
func (s *Server) inspect(w http.ResponseWriter, r *http.Request) {
	pid, err := process.ParsePid(r.URL.Query().Get("pid"))
	if err != nil {
		fail(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.manager.Inspect(r.Context(), pid)
	if err != nil {
		fail(w, status(err), err)
		return
	}
	reply(w, http.StatusOK, rec)
}

// terminate sends a termination request to one process.
func (s *Server) terminate(w http.ResponseWriter, r *http.Request) {
	pid, err := process.ParsePid(r.URL.Query().Get("pid"))
	if err != nil {
		fail(w, http.StatusBadRequest, err)
		return
	}
	name, err := s.manager.Terminate(r.Context(), pid)
	if err != nil {
		fail(w, status(err), err)
		return
	}
	gocore.Error("terminate", nil, map[string]string{
		"pid":  pid.String(),
		"name": name,
	}).Info()
	reply(w, http.StatusOK, map[string]any{
		"pid":     pid,
		"name":    name,
		"message": fmt.Sprintf("sent termination signal to process %d (%s)", pid, name),
	})
}

// summary responds with the top consumers in the process log.
func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	top := s.top
	if q := query.Get("top"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			fail(w, http.StatusBadRequest, fmt.Errorf("invalid top %q", q))
			return
		}
		top = n
	}
	format := analyze.FormatYAML
	if q := query.Get("format"); q != "" {
		if err := format.Set(q); err != nil {
			fail(w, http.StatusBadRequest, err)
			return
		}
	}

	sum, err := analyze.Summarize(s.path, top)
	if err != nil {
		fail(w, status(err), err)
		return
	}

	var buf bytes.Buffer
	if err := sum.Write(&buf, format); err != nil {
		fail(w, http.StatusInternalServerError, err)
		return
	}
	switch format {
	case analyze.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case analyze.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write(buf.Bytes())
}

// history responds with the logged series of one process name.
func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		fail(w, http.StatusBadRequest, errors.New("missing name"))
		return
	}
	es, err := store.Read(s.path)
	if err != nil {
		fail(w, status(err), err)
		return
	}
	reply(w, http.StatusOK, analyze.History(es, name))
}

// websocket opens a web socket that sends the latest snapshot for each message received.
func (s *Server) websocket() http.Handler {
	return websocket.Server{
		Config: websocket.Config{
			Version: websocket.ProtocolVersionHybi,
		},
		Handler: func(ws *websocket.Conn) {
			defer ws.Close()
			var msg string
			for {
				if err := websocket.Message.Receive(ws, &msg); err != nil {
					return
				}
				if msg == "suspend" {
					continue
				}
				if err := websocket.JSON.Send(ws, s.Latest()); err != nil {
					gocore.Error("websocket Send", err).Warn()
					return
				}
			}
		},
		Handshake: func(c *websocket.Config, r *http.Request) error {
			return nil
		},
	}
}

// status maps an error to an HTTP status code.
func status(err error) int {
	switch {
	case errors.Is(err, process.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, process.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, process.ErrUnavailable):
		return http.StatusGone
	case errors.Is(err, analyze.ErrTop):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func reply(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func fail(w http.ResponseWriter, code int, err error) {
	reply(w, code, map[string]string{"error": err.Error()})
}

// Serve starts the HTTP server, which shuts down when ctx is cancelled.
func Serve(ctx context.Context, s *Server) string {
	server := &http.Server{
		Addr:    "localhost:" + strconv.Itoa(flags.port),
		Handler: s.Handler(),
	}

	// serve https if a certificate and key are defined in the user's .ssh directory
	scheme := "http"
	listen := func() error { return server.ListenAndServe() }
	if u, err := user.Current(); err == nil {
		certfile := filepath.Join(u.HomeDir, ".ssh", "cert.pem")
		keyfile := filepath.Join(u.HomeDir, ".ssh", "key.pem")
		if _, err := os.Stat(certfile); err == nil {
			if _, err := os.Stat(keyfile); err == nil {
				scheme = "https"
				listen = func() error { return server.ListenAndServeTLS(certfile, keyfile) }
			}
		}
	}
	address := (&url.URL{Scheme: scheme, Host: server.Addr}).String()

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	go func() {
		gocore.Error("procwatch server", nil, map[string]string{
			"listen": address,
		}).Info()
		if err := listen(); !errors.Is(err, http.ErrServerClosed) {
			gocore.Error("procwatch server", err).Err()
		}
	}()

	return address
}
