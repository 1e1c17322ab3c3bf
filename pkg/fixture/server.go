// Package fixture serves the pages a browser test runs against. It plugs into
// the session lifecycle through Hooks: the server comes up before the remote
// session is requested and goes down after it was released.
package fixture

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	serverName      = "FixtureServer"
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	router *mux.Router
	logger *zap.Logger

	listenAddr    string
	advertiseHost string
	user          string
	password      string

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	done     chan error
}

type Option func(*Server)

// WithListenAddr sets the address to listen on. The default, 127.0.0.1:0,
// picks a free port.
func WithListenAddr(addr string) Option {
	return func(s *Server) {
		s.listenAddr = addr
	}
}

// WithAdvertiseHost sets the host name the remote browser uses to reach the
// server, which differs from the listen address when the browser runs on a
// Selenium grid node.
func WithAdvertiseHost(host string) Option {
	return func(s *Server) {
		s.advertiseHost = host
	}
}

// WithBasicAuth protects every page with HTTP basic authentication.
func WithBasicAuth(user, password string) Option {
	return func(s *Server) {
		s.user, s.password = user, password
	}
}

func New(logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:     mux.NewRouter(),
		logger:     logger.With(zap.String(logg.Layer, serverName)),
		listenAddr: "127.0.0.1:0",
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(s.logRequests)
	if s.user != "" {
		s.router.Use(s.basicAuth)
	}

	return s
}

// Router exposes the route table so tests can register their pages.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Page serves a static HTML document at path.
func (s *Server) Page(path, html string) *mux.Route {
	return s.router.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}).Methods(http.MethodGet)
}

// Dir serves the files below dir under the URL prefix.
func (s *Server) Dir(prefix, dir string) *mux.Route {
	return s.router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
}

func (s *Server) Start(ctx context.Context) error {
	const op = "fixture.Start"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil
	}

	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", s.listenAddr)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "listen_failed",
			apperr.MetaHost:   s.listenAddr,
		})
	}

	s.listener = listener
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.done = make(chan error, 1)

	go func(srv *http.Server, done chan<- error) {
		err := srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		done <- err
	}(s.srv, s.done)

	s.logger.Info("Fixture server listening", zap.String(logg.URL, s.urlLocked()))

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "fixture.Stop"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	if serveErr := <-s.done; err == nil {
		err = serveErr
	}

	s.srv, s.listener, s.done = nil, nil, nil

	if err != nil {
		return apperr.WrapWithReason(op, apperr.CodeInternal, err, "shutdown_failed")
	}

	s.logger.Info("Fixture server stopped")

	return nil
}

// URL is the base URL of the running server as seen by the browser. It is
// empty while the server is stopped.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.urlLocked()
}

func (s *Server) urlLocked() string {
	if s.listener == nil {
		return ""
	}

	host, port, err := net.SplitHostPort(s.listener.Addr().String())
	if err != nil {
		return ""
	}

	if s.advertiseHost != "" {
		host = s.advertiseHost
	}

	return "http://" + net.JoinHostPort(host, port) + "/"
}

// Hooks starts the server before the session and stops it after the session
// was released.
func (s *Server) Hooks() session.Hooks {
	return session.Hooks{
		BeforeSessionStart: s.Start,
		AfterSessionStop:   s.Stop,
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		next.ServeHTTP(rec, r)

		s.logger.Debug("Fixture request",
			zap.String("method", r.Method),
			zap.String(logg.URL, r.URL.String()),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(started)))
	})
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(s.user)) != 1 ||
			subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="fixture"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Port returns the port the server listens on, or 0 while stopped.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return 0
	}

	_, port, err := net.SplitHostPort(s.listener.Addr().String())
	if err != nil {
		return 0
	}

	n, _ := strconv.Atoi(port)

	return n
}
