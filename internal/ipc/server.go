package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/adjacent/internal/adjacent"
	"github.com/1broseidon/adjacent/internal/logging"
)

const connTimeout = 5 * time.Second

// Handler executes IPC commands. The daemon implements it.
type Handler interface {
	Focus(ctx context.Context, d adjacent.Direction, dryRun bool) (adjacent.Decision, error)
	ListWindows(ctx context.Context) (*WindowsData, error)
	Status() StatusData
	Reload(ctx context.Context) error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath string
	handler    Handler
	logger     zerolog.Logger

	mu           sync.Mutex
	listener     net.Listener
	shuttingDown bool
	conns        sync.WaitGroup
}

// NewServer creates a new IPC server on socketPath.
func NewServer(socketPath string, handler Handler, logger zerolog.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		handler:    handler,
		logger:     logger.With().Str("component", "ipc").Logger(),
	}
}

// SocketPath returns the socket the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Listen creates the socket. A stale socket file from a previous run is
// replaced; a live one is an error.
func (s *Server) Listen() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("another daemon is listening on %s", s.socketPath)
	}
	_ = os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.shuttingDown = false
	s.mu.Unlock()

	s.logger.Info().Str("socket", s.socketPath).Msg("IPC server listening")
	return nil
}

// Serve accepts connections until ctx is done or Close is called.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener == nil {
		return fmt.Errorf("ipc server is not listening")
	}

	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.closing() {
				s.conns.Wait()
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return fmt.Errorf("IPC accept: %w", err)
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

// Close stops accepting connections and removes the socket file.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shuttingDown {
		return
	}
	s.shuttingDown = true
	if s.listener != nil {
		s.listener.Close()
	}
	_ = os.Remove(s.socketPath)
}

func (s *Server) closing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuttingDown
}

// handleConnection serves a single request/response exchange.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn().Err(err).Msg("IPC read error")
		return
	}

	var resp *Response
	if req, err := ParseRequest(data); err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		reqCtx := logging.WithContext(ctx, s.logger.With().Str("command", string(req.Command)).Logger())
		resp = s.handleCommand(reqCtx, req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal response")
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn().Err(err).Msg("failed to send response")
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	switch req.Command {
	case CommandFocus:
		return s.handleFocus(ctx, req.Payload)
	case CommandListWindows:
		return s.handleListWindows(ctx)
	case CommandGetStatus:
		return s.respond(s.handler.Status())
	case CommandReload:
		return s.handleReload(ctx)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleFocus(ctx context.Context, payload json.RawMessage) *Response {
	var req FocusPayload
	if len(payload) == 0 {
		return NewErrorResponse("direction is required")
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid focus payload: %v", err))
	}
	dir, err := adjacent.ParseDirection(req.Direction)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	decision, err := s.handler.Focus(ctx, dir, req.DryRun)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to focus %s: %v", dir, err))
	}
	return s.respond(NewDecisionData(decision))
}

func (s *Server) handleListWindows(ctx context.Context) *Response {
	data, err := s.handler.ListWindows(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list windows: %v", err))
	}
	return s.respond(data)
}

func (s *Server) handleReload(ctx context.Context) *Response {
	s.logger.Info().Msg("received RELOAD")
	if err := s.handler.Reload(ctx); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	return s.respond(nil)
}

func (s *Server) respond(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}
