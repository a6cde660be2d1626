//go:build linux

package genericdash

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

func TestSocketCANConnection_NextFrame(t *testing.T) {
	local, remote := net.Pipe()
	conn := newSocketCANConnection(local, nil)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	want := can.Frame{ID: DefaultCANID, Length: 8, Data: can.Data{7, 0, 0, 0, 15, 0, 0x2c, 0x01}}
	if err := socketcan.NewTransmitter(remote).TransmitFrame(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := conn.NextFrame(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("want %v. got: %v.", want, got)
	}
}

func TestSocketCANConnection_StoppedSocketKeepsFailing(t *testing.T) {
	local, remote := net.Pipe()
	conn := newSocketCANConnection(local, nil)
	defer conn.Close()
	remote.Close()

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_, err := conn.NextFrame(ctx)
		cancel()
		if !errors.Is(err, io.EOF) {
			t.Fatalf("read %d: want %v. got: %v.", i, io.EOF, err)
		}
	}
}

func TestSocketCANConnection_LoggingSessionCloses(t *testing.T) {
	local, remote := net.Pipe()
	conn := newSocketCANConnection(local, nil)
	defer conn.Close()
	remote.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session, err := LoggingSession(ctx, conn, nil, DefaultCANID, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	for range session {
	}
	if ctx.Err() != nil {
		t.Fatal("session only closed when the context expired")
	}
}

func TestSocketCANConnection_Close(t *testing.T) {
	local, _ := net.Pipe()
	conn := newSocketCANConnection(local, nil)

	if err := conn.Close(); err != nil {
		t.Fatal(err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := conn.NextFrame(ctx); err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want the socket error. got: %v.", err)
	}
}
