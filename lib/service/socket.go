// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bureau-foundation/widgets/lib/codec"
	"github.com/bureau-foundation/widgets/lib/errkind"
)

// ActionFunc handles one socket action. raw is the whole CBOR request,
// "action" field included; the handler decodes its own fields from it.
//
// A non-nil result is CBOR-encoded into the response's data field. A
// nil result yields a bare {ok: true}. A returned error becomes a
// failure response carrying its errkind name when it has one.
type ActionFunc func(ctx context.Context, raw []byte) (any, error)

// Response is the envelope of every reply on the socket.
type Response struct {
	OK    bool   `cbor:"ok"`
	Error string `cbor:"error,omitempty"`

	// Kind is the errkind name of a classified failure, empty for
	// unclassified ones.
	Kind string           `cbor:"kind,omitempty"`
	Data codec.RawMessage `cbor:"data,omitempty"`
}

// ObserveFunc is called after every dispatched request with the action,
// how long the handler ran, and its error.
type ObserveFunc func(action string, elapsed time.Duration, err error)

// SocketServer answers CBOR requests on a Unix socket, one request and
// one response per connection. CBOR values are self-delimiting, so the
// connection needs no framing.
type SocketServer struct {
	socketPath string
	logger     *slog.Logger
	handlers   map[string]ActionFunc
	observe    ObserveFunc

	// inflight counts connections still being answered. Serve waits
	// for it to drain before returning.
	inflight sync.WaitGroup
}

// NewSocketServer creates a server for socketPath. A nil logger
// discards output.
func NewSocketServer(socketPath string, logger *slog.Logger) *SocketServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SocketServer{
		socketPath: socketPath,
		logger:     logger,
		handlers:   make(map[string]ActionFunc),
	}
}

// Handle registers handler for action. It must be called before Serve
// and panics when action already has a handler.
func (s *SocketServer) Handle(action string, handler ActionFunc) {
	if _, exists := s.handlers[action]; exists {
		panic(fmt.Sprintf("service.SocketServer: duplicate handler for action %q", action))
	}
	s.handlers[action] = handler
}

// Observe installs fn as the request observer. Call before Serve.
func (s *SocketServer) Observe(fn ObserveFunc) {
	s.observe = fn
}

// Serve listens until ctx is cancelled, then stops accepting and waits
// for in-flight requests. A leftover socket file is replaced, the
// socket directory is created with mode 0700, and the socket is
// removed on return.
func (s *SocketServer) Serve(ctx context.Context) error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	defer os.Remove(s.socketPath)
	defer listener.Close()

	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	s.logger.Info("socket server listening", "path", s.socketPath)
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.serveConn(ctx, conn)
		}()
	}
	s.inflight.Wait()
	return nil
}

func (s *SocketServer) listen() (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating socket directory: %w", err)
	}
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	return listener, nil
}

const (
	// readTimeout bounds the wait for a client's request.
	readTimeout = 30 * time.Second

	// writeTimeout bounds writing the response.
	writeTimeout = 10 * time.Second

	// maxRequestSize bounds a single CBOR request. Widget configs are
	// the largest payloads.
	maxRequestSize = 4 << 20
)

// errEmptyRequest marks a client that connected and closed without
// sending anything.
var errEmptyRequest = errors.New("empty request")

func (s *SocketServer) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	action, raw, err := readRequest(conn)
	if errors.Is(err, errEmptyRequest) {
		return
	}
	if err != nil {
		s.respond(conn, nil, err)
		return
	}

	handler, ok := s.handlers[action]
	if !ok {
		s.respond(conn, nil, fmt.Errorf("unknown action %q", action))
		return
	}

	started := time.Now()
	result, err := handler(ctx, raw)
	if s.observe != nil {
		s.observe(action, time.Since(started), err)
	}
	if err != nil {
		s.logger.Debug("action failed", "action", action, "error", err)
	}
	s.respond(conn, result, err)
}

// readRequest decodes one CBOR value from conn and returns its action
// name along with the raw bytes.
func readRequest(conn net.Conn) (string, []byte, error) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))

	var raw codec.RawMessage
	if err := codec.NewDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil, errEmptyRequest
		}
		return "", nil, errkind.New(errkind.Deserialization, "invalid request", err)
	}
	var header struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &header); err != nil {
		return "", nil, errkind.New(errkind.Deserialization, "invalid request", err)
	}
	if header.Action == "" {
		return "", nil, errors.New("missing required field: action")
	}
	return header.Action, raw, nil
}

// respond writes the response for a handler outcome. Write failures are
// only logged: the connection closes either way.
func (s *SocketServer) respond(conn net.Conn, result any, failure error) {
	response := Response{OK: failure == nil}
	if failure == nil && result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			failure = errkind.New(errkind.Serialization, "marshal response", err)
			response.OK = false
		} else {
			response.Data = data
		}
	}
	if failure != nil {
		response.Error = failure.Error()
		if kind, ok := errkind.KindOf(failure); ok {
			response.Kind = kind.String()
		}
	}

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		s.logger.Debug("writing response failed", "error", err, "ok", response.OK)
	}
}
