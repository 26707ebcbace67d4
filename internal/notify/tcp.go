package notify

import (
	"bufio"
	"errors"
	"net"
	"sync"
)

// Server streams toasts to plain TCP clients, one JSON object per line.
type Server struct {
	Addr string
	Hub  *Hub

	mu sync.Mutex
	ln net.Listener
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{Addr: addr, Hub: hub}
}

// Run listens on Addr and blocks until Close.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.Hub.log.Info().Str("addr", ln.Addr().String()).Msg("tcp toast stream listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Hub.log.Warn().Err(err).Msg("tcp accept failed")
			continue
		}

		s.Hub.Welcome(conn)
		s.Hub.Add(conn)
		s.Hub.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("tcp client connected")

		go func(c net.Conn) {
			defer func() {
				s.Hub.Remove(c)
				s.Hub.log.Debug().Str("remote", c.RemoteAddr().String()).Msg("tcp client disconnected")
			}()

			// incoming lines are ignored; reading only detects disconnects
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
