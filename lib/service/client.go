// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/bureau-foundation/widgets/lib/codec"
	"github.com/bureau-foundation/widgets/lib/errkind"
)

// dialTimeout covers only the connect phase. The server's read and
// write timeouts apply once connected.
const dialTimeout = 5 * time.Second

// responseReadTimeout is how long the client waits for a response after
// writing the request: the server's readTimeout plus writeTimeout plus
// room for the handler.
const responseReadTimeout = 45 * time.Second

const maxResponseSize = maxRequestSize

// ServiceError is returned by Call when the server responds with
// ok=false. When the server classified the failure, errors.Is matches
// the corresponding errkind.Kind.
type ServiceError struct {
	Action  string
	Kind    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

// Unwrap returns the errkind.Kind named by the response, or nil.
func (e *ServiceError) Unwrap() error {
	if kind, ok := errkind.ParseKind(e.Kind); ok {
		return kind
	}
	return nil
}

// Client sends CBOR requests to a widgetd socket. Each Call opens a new
// connection, matching the server's one-request-per-connection model.
type Client struct {
	socketPath string
}

// NewClient returns a client for the socket at socketPath. Nothing is
// dialed until the first Call.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string { return c.socketPath }

// Call sends a request and decodes the response.
//
// fields may be nil, a map[string]any, or a struct with cbor tags; the
// client merges it with the "action" field. On success, if result is
// non-nil and the response carries data, the data is decoded into
// result. A failure response returns a *ServiceError. Connection and
// encoding failures are returned as plain errors.
func (c *Client) Call(ctx context.Context, action string, fields any, result any) error {
	request, err := buildRequest(action, fields)
	if err != nil {
		return err
	}

	response, err := c.send(ctx, request)
	if err != nil {
		return fmt.Errorf("calling %q on %s: %w", action, c.socketPath, err)
	}

	if !response.OK {
		return &ServiceError{
			Action:  action,
			Kind:    response.Kind,
			Message: response.Error,
		}
	}

	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding response data for %q: %w", action, err)
		}
	}
	return nil
}

// buildRequest flattens fields into a map and injects "action".
func buildRequest(action string, fields any) (map[string]any, error) {
	request := map[string]any{}
	switch typed := fields.(type) {
	case nil:
	case map[string]any:
		for key, value := range typed {
			request[key] = value
		}
	default:
		data, err := codec.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("encoding %q request: %w", action, err)
		}
		if err := codec.Unmarshal(data, &request); err != nil {
			return nil, fmt.Errorf("%q request fields must encode as a map: %w", action, err)
		}
	}
	request["action"] = action
	return request, nil
}

// send connects to the socket, writes the request, and reads the
// response.
func (c *Client) send(ctx context.Context, request any) (*Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}

	// Half-close so the server's read side sees EOF.
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	if _, ok := ctx.Deadline(); !ok {
		conn.SetReadDeadline(time.Now().Add(responseReadTimeout))
	}
	var response Response
	if err := codec.NewDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&response); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &response, nil
}
