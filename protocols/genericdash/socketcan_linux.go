//go:build linux

package genericdash

import (
	"context"
	"io"
	"net"

	"github.com/pkg/errors"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

type socketCANConnection struct {
	conn   net.Conn
	recv   *socketcan.Receiver
	logger Logger
	frames chan can.Frame
	done   chan struct{}

	// err is set before frames is closed.
	err error
}

// NewSocketCANConnection returns a Connection reading from the named
// SocketCAN interface, e.g. "can0".
func NewSocketCANConnection(ctx context.Context, iface string, l Logger) (Connection, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing socketcan interface %s", iface)
	}
	return newSocketCANConnection(conn, l), nil
}

func newSocketCANConnection(conn net.Conn, l Logger) *socketCANConnection {
	if l == nil {
		l = NopLogger
	}
	c := &socketCANConnection{
		conn:   conn,
		recv:   socketcan.NewReceiver(conn),
		logger: l,
		frames: make(chan can.Frame, 16),
		done:   make(chan struct{}),
	}
	go c.receive()
	return c
}

func (c *socketCANConnection) receive() {
	defer close(c.frames)

	for c.recv.Receive() {
		if c.recv.HasErrorFrame() {
			c.logger.Debugf("error frame: %v", c.recv.ErrorFrame())
			continue
		}
		select {
		case c.frames <- c.recv.Frame():
		case <-c.done:
			c.err = errors.New("connection closed")
			return
		}
	}

	c.err = c.recv.Err()
	if c.err == nil {
		c.err = io.EOF
	}
}

// NextFrame returns the next received frame. Once the socket stops
// delivering frames every call returns the error that stopped it.
func (c *socketCANConnection) NextFrame(ctx context.Context) (can.Frame, error) {
	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case f, ok := <-c.frames:
		if !ok {
			return can.Frame{}, errors.Wrap(c.err, "receiving from socketcan")
		}
		logFrame(c.logger, f, "read: ")
		return f, nil
	}
}

func (c *socketCANConnection) Close() error {
	c.logger.Debug("closing connection")
	select {
	case <-c.done:
		return nil
	default:
		close(c.done)
	}
	return c.conn.Close()
}
