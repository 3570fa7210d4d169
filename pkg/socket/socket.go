// Package socket provides stream sources and sinks over network connections.
package socket

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/streamkit-io/streamkit/pkg/stream"
)

const (
	// RecommendedDialTimeout is the recommended timeout to use when
	// establishing connections.
	RecommendedDialTimeout = 5 * time.Second
)

// Connection adapts a net.Conn to the stream.Source and stream.Sink contracts.
// If a timeout is set, each individual read and write is subject to a deadline
// of that duration, so a stalled peer surfaces as a read or write failure
// rather than blocking forever.
type Connection struct {
	// connection is the underlying connection.
	connection net.Conn
	// timeout is the per-operation timeout. A zero value disables deadlines.
	timeout time.Duration
	// source adapts deadline-governed reads to the stream.Source contract.
	source stream.Source
}

// NewConnection wraps connection with the specified per-operation timeout. A
// timeout of zero disables deadlines.
func NewConnection(connection net.Conn, timeout time.Duration) *Connection {
	result := &Connection{
		connection: connection,
		timeout:    timeout,
	}
	result.source = stream.SourceFromReader(readerFunc(result.read))
	return result
}

// readerFunc adapts a function to io.Reader.
type readerFunc func([]byte) (int, error)

// Read implements io.Reader.Read.
func (f readerFunc) Read(buffer []byte) (int, error) {
	return f(buffer)
}

// read performs a single deadline-governed read.
func (c *Connection) read(buffer []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.connection.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, errors.Wrap(err, "unable to set read deadline")
		}
	}
	return c.connection.Read(buffer)
}

// Read implements stream.Source.Read. The peer closing its side of the
// connection is reported as the end of data.
func (c *Connection) Read(buffer []byte) (int, error) {
	return c.source.Read(buffer)
}

// Write implements stream.Sink.Write.
func (c *Connection) Write(buffer []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.connection.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, errors.Wrap(err, "unable to set write deadline")
		}
	}
	return c.connection.Write(buffer)
}

// CloseWrite shuts down the sending side of the connection so that the peer
// observes the end of data while replies can still be read. Connections that
// don't support half-closure are closed entirely.
func (c *Connection) CloseWrite() error {
	if closer, ok := c.connection.(interface{ CloseWrite() error }); ok {
		return closer.CloseWrite()
	}
	return c.connection.Close()
}

// Close implements io.Closer.Close.
func (c *Connection) Close() error {
	return c.connection.Close()
}

// RemoteAddress returns the address of the remote peer.
func (c *Connection) RemoteAddress() string {
	return c.connection.RemoteAddr().String()
}

// Dial establishes a connection to address, failing if the context is
// cancelled. The timeout is applied both to connection establishment and to
// each subsequent operation.
func Dial(ctx context.Context, network, address string, timeout time.Duration) (*Connection, error) {
	// Create a dialer with the connection timeout.
	dialer := &net.Dialer{Timeout: timeout}

	// Perform dialing.
	connection, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, errors.Wrap(err, "unable to dial")
	}

	// Success.
	return NewConnection(connection, timeout), nil
}

// Listen creates a new listener on address.
func Listen(network, address string) (net.Listener, error) {
	listener, err := net.Listen(network, address)
	if err != nil {
		return nil, errors.Wrap(err, "unable to listen")
	}
	return listener, nil
}

// Accept accepts a single connection from listener, failing if the context is
// cancelled first. Cancellation closes the listener.
func Accept(ctx context.Context, listener net.Listener, timeout time.Duration) (*Connection, error) {
	// Close the listener if the context is cancelled before a connection
	// arrives.
	accepted := make(chan struct{})
	defer close(accepted)
	go func() {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-accepted:
		}
	}()

	// Accept a connection.
	connection, err := listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "accept cancelled")
		}
		return nil, errors.Wrap(err, "unable to accept connection")
	}

	// Success.
	return NewConnection(connection, timeout), nil
}
