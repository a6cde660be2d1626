package genericdash

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"
	"go.einride.tech/can"
)

// Connection is a source of CAN frames carrying Generic Dash data.
type Connection interface {
	// NextFrame blocks until the next CAN frame arrives.
	NextFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

const (
	// ConnectionReadTimeout is the amount of time per read spent before a timeout occurs.
	// The timeout is per read, but it may take several reads to consume an entire frame.
	ConnectionReadTimeout time.Duration = time.Millisecond * 1500
	// ConnectionTotalReadTimeout is the amount of time spent waiting for an entire frame
	// before a timeout occurs.
	ConnectionTotalReadTimeout time.Duration = time.Millisecond * 5000
)

var (
	// ErrReadTimeout is returned when reading a frame times out.
	ErrReadTimeout = errors.New("the read operation timed out")

	// ErrSocketCANUnsupported is returned when opening a SocketCAN interface
	// on a platform without SocketCAN.
	ErrSocketCANUnsupported = errors.New("socketcan is only supported on linux")
)

type Logger interface {
	Debug(message string)
	Debugf(message string, args ...interface{})
}

type nopLogger struct{}

func (l nopLogger) Debug(message string) {}

func (l nopLogger) Debugf(message string, args ...interface{}) {}

var NopLogger Logger = nopLogger{}

type defaultLogger struct {
	l *log.Logger
}

func (l *defaultLogger) Debug(message string) {
	l.l.Println(message)
}

func (l *defaultLogger) Debugf(message string, args ...interface{}) {
	l.l.Printf(message, args...)
}

var DefaultLogger = func(out io.Writer) Logger {
	return &defaultLogger{log.New(out, "DASH ", log.LstdFlags)}
}

func logFrame(l Logger, f can.Frame, prefix string) {
	s := fmt.Sprintf("%s0x%x:", prefix, f.ID)
	for _, b := range f.Data[:f.Length] {
		s += fmt.Sprintf(" 0x%x", b)
	}
	l.Debug(s)
}
