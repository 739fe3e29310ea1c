package web

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// maxUploadBytes bounds the multipart body of one solve request.
const maxUploadBytes = 8 << 20

// MaxTimeLimit is the longest solving time the form accepts.
const MaxTimeLimit = 300 * time.Second

type Server struct {
	//** Dependencies
	logger *logrus.Logger

	defaultEngine string
	mux           *http.ServeMux
}

// NewServer wires the route table. defaultEngine names the engine used when a
// request leaves the choice blank.
func NewServer(logger *logrus.Logger, defaultEngine string) *Server {
	server := &Server{
		logger:        logger,
		defaultEngine: defaultEngine,
		mux:           http.NewServeMux(),
	}
	server.mux.HandleFunc("/", server.handleIndex)
	server.mux.HandleFunc("/solve", server.handleSolve)
	server.mux.HandleFunc("/api/v1/health", server.handleHealth)
	return server
}

// Handler returns the route table behind the middleware chain.
func (server *Server) Handler() http.Handler {
	return requestID(requestLogger(server.logger, server.mux))
}

// NewHTTPServer sizes the write timeout so a response can outlive the longest
// permitted solve.
func NewHTTPServer(addr string, server *Server) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: MaxTimeLimit + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
