package genericdash_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gavinwade12/linkdash/protocols/genericdash"
	"go.einride.tech/can"
)

func TestLoggingSession(t *testing.T) {
	params := []genericdash.Parameter{
		genericdash.EngineSpeed,
		genericdash.CoolantTemperature,
		genericdash.FuelPressure,
		genericdash.Lambda1,
		genericdash.Statuses,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session, err := genericdash.LoggingSession(ctx, genericdash.NewFakeConnection(time.Millisecond),
		genericdash.NewFrameStore(), genericdash.DefaultCANID, params, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		values := <-session
		if len(values) != len(params) {
			t.Fatalf("not all values are present")
		}
	}
}

// sliceConnection returns its frames in order and then fails every read.
type sliceConnection struct {
	frames []can.Frame
}

func (c *sliceConnection) NextFrame(ctx context.Context) (can.Frame, error) {
	if len(c.frames) == 0 {
		return can.Frame{}, io.EOF
	}
	f := c.frames[0]
	c.frames = c.frames[1:]
	return f, nil
}

func (c *sliceConnection) Close() error {
	return nil
}

func TestLoggingSession_FiltersFrames(t *testing.T) {
	conn := &sliceConnection{frames: []can.Frame{
		{ID: 0x100, Length: 8, Data: can.Data{2, 0, 0, 0, 0, 0, 90, 0}},
		{ID: genericdash.DefaultCANID, Length: 8, Data: can.Data{2, 1, 0, 0, 0, 0, 90, 0}},
		{ID: genericdash.DefaultCANID, Length: 4, Data: can.Data{2, 0, 0, 0}},
		{ID: genericdash.DefaultCANID, Length: 8, Data: can.Data{2, 0, 0, 0, 0, 0, 140, 0}},
	}}

	store := genericdash.NewFrameStore()
	session, err := genericdash.LoggingSession(context.Background(), conn, store,
		genericdash.DefaultCANID, []genericdash.Parameter{genericdash.CoolantTemperature}, nil)
	if err != nil {
		t.Fatal(err)
	}

	snapshots := []map[genericdash.Parameter]genericdash.ParameterValue{}
	for values := range session {
		snapshots = append(snapshots, values)
	}

	if len(snapshots) != 1 {
		t.Fatalf("want 1 snapshot. got: %d.", len(snapshots))
	}
	if v := snapshots[0][genericdash.CoolantTemperature].Value; v != 90 {
		t.Fatalf("want 90. got: %v.", v)
	}
}

func TestLoggingSession_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session, err := genericdash.LoggingSession(ctx, genericdash.NewFakeConnection(time.Millisecond),
		nil, genericdash.DefaultCANID, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	values := <-session
	if len(values) != genericdash.ParameterCount {
		t.Fatalf("want %d values. got: %d.", genericdash.ParameterCount, len(values))
	}

	cancel()
	for range session {
	}
}

func TestLoggingSession_UnknownParameter(t *testing.T) {
	_, err := genericdash.LoggingSession(context.Background(), genericdash.NewFakeConnection(time.Millisecond),
		nil, genericdash.DefaultCANID, []genericdash.Parameter{genericdash.Parameter(genericdash.ParameterCount)}, nil)
	if !errors.Is(err, genericdash.ErrUnknownParameter) {
		t.Fatalf("want %v. got: %v.", genericdash.ErrUnknownParameter, err)
	}
}
