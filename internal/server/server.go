// Package server exposes the parser as a JSON service over HTTP/3.
package server

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/quic-go/quic-go/http3"

	"github.com/zkcircuit/leoparse/internal/cli"
)

// ErrClosed is returned by Start after Stop.
var ErrClosed = errors.New("server closed")

// Server wraps the http3.Server lifecycle.
type Server struct {
	addr   string
	srv    *http3.Server
	logger *cli.Logger

	mu     sync.Mutex
	pc     net.PacketConn
	done   chan struct{}
	closed bool
}

// New creates a server bound to addr with the given TLS config and handler.
func New(addr string, tlsCfg *tls.Config, h http.Handler, logger *cli.Logger) *Server {
	if logger == nil {
		logger = cli.NewLogger(false, false)
	}
	return &Server{
		addr:   addr,
		srv:    &http3.Server{Addr: addr, TLSConfig: tlsCfg, Handler: h},
		logger: logger,
	}
}

// Start begins serving HTTP/3 and returns the bound address, which differs
// from the configured one when it ends in ":0".
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}
	if s.pc != nil {
		return "", fmt.Errorf("server already started on %s", s.pc.LocalAddr())
	}

	pc, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.pc = pc
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		if err := s.srv.Serve(pc); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
			s.logger.Debug("http3 serve: %v", err)
		}
	}(s.done)

	addr := pc.LocalAddr().String()
	s.logger.Info("serving HTTP/3 on %s", addr)
	return addr, nil
}

// Stop closes the server. Further Start calls fail with ErrClosed.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.pc == nil {
		return nil
	}

	err := s.srv.Close()
	_ = s.pc.Close()
	select {
	case <-s.done:
	case <-time.After(time.Second):
	}
	return err
}
