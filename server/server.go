// Package server contains hub API server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"github.com/go-home-io/ttlock/systems"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// TTLockServer exposes locks to the hub.
type TTLockServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	wsSettings websocket.Upgrader
	httpServer *http.Server
	background sync.WaitGroup
	bgMutex    sync.Mutex
	stopped    bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer constructs a new hub API server.
func NewServer(settings providers.ISettingsProvider) *TTLockServer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &TTLockServer{
		Logger:   settings.PluginLogger(systems.SysServer, loggerProvider),
		Settings: settings,
		wsSettings: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ctx:    ctx,
		cancel: cancel,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", settings.BridgeSettings().Port),
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start launches hub API server.
func (s *TTLockServer) Start() {
	go func() {
		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to start server", err)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", s.Settings.BridgeSettings().Port))
}

// Stop gracefully shuts down the server and waits for background refreshes.
func (s *TTLockServer) Stop(ctx context.Context) {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.Logger.Error("Failed to stop server", err)
	}

	s.bgMutex.Lock()
	s.stopped = true
	s.bgMutex.Unlock()

	s.cancel()
	s.background.Wait()
}

// Returns root handler with middleware.
func (s *TTLockServer) handler() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	return handlers.ProxyHeaders(handlers.RecoveryHandler(
		handlers.RecoveryLogger(&recoveryLogger{logger: s.Logger}),
		handlers.PrintRecoveryStack(false))(router))
}

// All API registration.
func (s *TTLockServer) registerAPI(router *mux.Router) {
	publicRouter := router.PathPrefix(routePublic).Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/lock", s.getLocks).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/lock/{%s}", urlLockID), s.getLock).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/lock/{%s}/target", urlLockID), s.setTarget).Methods(http.MethodPost)
	apiRouter.HandleFunc(fmt.Sprintf("/lock/{%s}/battery", urlLockID),
		s.refreshBattery).Methods(http.MethodPost)
	apiRouter.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	apiRouter.Use(s.authMiddleware)
	apiRouter.Use(s.logMiddleware)
}

// Runs function in background, server waits for it on stop.
func (s *TTLockServer) runBackground(fn func(ctx context.Context)) {
	s.bgMutex.Lock()
	defer s.bgMutex.Unlock()
	if s.stopped {
		return
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		fn(s.ctx)
	}()
}

// Forwards recovered panics to the system logger.
type recoveryLogger struct {
	logger common.ILoggerProvider
}

// Println logs recovered panic.
func (r *recoveryLogger) Println(v ...interface{}) {
	r.logger.Error("Recovered from panic", errors.New(fmt.Sprint(v...)))
}
