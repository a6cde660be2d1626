package genericdash

import (
	"context"
	"encoding/hex"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.einride.tech/can"
)

// SLCANBaudRate is the serial baud rate used to talk to SLCAN adapters.
const SLCANBaudRate = 115200

// SLCAN bitrate commands understood by serial CAN adapters.
const (
	SLCANBitrate125K  = "S4"
	SLCANBitrate250K  = "S5"
	SLCANBitrate500K  = "S6"
	SLCANBitrate1000K = "S8"
)

var (
	// ErrMalformedSLCAN is returned when the adapter sends a line that isn't
	// a valid SLCAN frame.
	ErrMalformedSLCAN = errors.New("malformed slcan frame")

	// ErrAdapterError is returned when the adapter answers with a bell,
	// its way of rejecting a command.
	ErrAdapterError = errors.New("slcan adapter reported an error")
)

// SLCANConnection reads CAN frames from a serial CAN adapter speaking the
// ASCII SLCAN protocol.
type SLCANConnection struct {
	port   io.ReadWriteCloser
	logger Logger
	lines  chan lineResult
	done   chan struct{}
}

type lineResult struct {
	line string
	err  error
}

// NewSLCANConnection returns a new SLCANConnection reading from port. Reading
// starts immediately; call Open to configure and open the CAN channel.
func NewSLCANConnection(port io.ReadWriteCloser, l Logger) *SLCANConnection {
	if l == nil {
		l = NopLogger
	}
	c := &SLCANConnection{
		port:   port,
		logger: l,
		lines:  make(chan lineResult, 16),
		done:   make(chan struct{}),
	}
	go c.readLines()
	return c
}

// Open closes any open channel, sets the bitrate and opens the channel in
// normal mode.
func (c *SLCANConnection) Open(ctx context.Context, bitrate string) error {
	for _, cmd := range []string{"C", bitrate, "O"} {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.logger.Debugf("sending slcan command %q", cmd)
		if _, err := c.port.Write([]byte(cmd + "\r")); err != nil {
			return errors.Wrapf(err, "writing slcan command %q", cmd)
		}
	}
	return nil
}

func (c *SLCANConnection) readLines() {
	buf := make([]byte, 64)
	line := []byte{}
	for {
		n, err := c.port.Read(buf)
		for _, b := range buf[:n] {
			switch b {
			case '\r', '\n':
				if len(line) == 0 {
					continue // acknowledgement or line ending pair
				}
				c.send(lineResult{line: string(line)})
				line = []byte{}
			case '\a':
				c.send(lineResult{line: "\a"})
				line = []byte{}
			default:
				line = append(line, b)
			}
		}
		if err != nil {
			c.send(lineResult{err: err})
			return
		}

		// a serial port read timeout returns no bytes and no error
		select {
		case <-c.done:
			return
		default:
		}
	}
}

func (c *SLCANConnection) send(r lineResult) {
	select {
	case c.lines <- r:
	case <-c.done:
	}
}

// NextFrame returns the next data or remote frame received by the adapter.
func (c *SLCANConnection) NextFrame(ctx context.Context) (can.Frame, error) {
	timeout := time.NewTimer(ConnectionTotalReadTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			return can.Frame{}, ctx.Err()
		case <-timeout.C:
			return can.Frame{}, ErrReadTimeout
		case r := <-c.lines:
			if r.err != nil {
				return can.Frame{}, errors.Wrap(r.err, "reading from adapter")
			}

			f, err := ParseSLCAN(r.line)
			if errors.Is(err, errSkipLine) {
				c.logger.Debugf("skipping slcan line %q", r.line)
				continue
			}
			if err != nil {
				return can.Frame{}, err
			}

			logFrame(c.logger, f, "read: ")
			return f, nil
		}
	}
}

// Close closes the channel on the adapter and releases the serial port.
func (c *SLCANConnection) Close() error {
	c.logger.Debug("closing connection")

	select {
	case <-c.done:
		return nil
	default:
		close(c.done)
	}

	_, _ = c.port.Write([]byte("C\r"))
	return c.port.Close()
}

var errSkipLine = errors.New("not a frame")

// ParseSLCAN parses a single SLCAN line (without the trailing carriage
// return) into a CAN frame. A trailing timestamp is ignored.
func ParseSLCAN(line string) (can.Frame, error) {
	var f can.Frame
	if line == "" {
		return f, errSkipLine
	}

	var idLen int
	switch line[0] {
	case 't':
		idLen = 3
	case 'r':
		idLen = 3
		f.IsRemote = true
	case 'T':
		idLen = 8
		f.IsExtended = true
	case 'R':
		idLen = 8
		f.IsExtended = true
		f.IsRemote = true
	case 'z', 'Z':
		return f, errSkipLine // transmit acknowledgement
	case '\a':
		return f, ErrAdapterError
	default:
		return f, errors.Wrapf(ErrMalformedSLCAN, "unknown frame type %q", line[0])
	}

	if len(line) < 1+idLen+1 {
		return f, errors.Wrapf(ErrMalformedSLCAN, "line too short %q", line)
	}

	id, err := strconv.ParseUint(line[1:1+idLen], 16, 32)
	if err != nil {
		return f, errors.Wrapf(ErrMalformedSLCAN, "parsing id of %q", line)
	}
	f.ID = uint32(id)

	dlc := line[1+idLen] - '0'
	if dlc > 8 {
		return f, errors.Wrapf(ErrMalformedSLCAN, "invalid dlc in %q", line)
	}
	f.Length = dlc

	if f.IsRemote {
		return f, nil
	}

	data := line[2+idLen:]
	if len(data) < int(dlc)*2 {
		return f, errors.Wrapf(ErrMalformedSLCAN, "expected %d data bytes in %q", dlc, line)
	}
	if _, err = hex.Decode(f.Data[:dlc], []byte(data[:dlc*2])); err != nil {
		return f, errors.Wrapf(ErrMalformedSLCAN, "decoding data of %q", line)
	}

	return f, nil
}
