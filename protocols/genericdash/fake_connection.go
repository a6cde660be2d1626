package genericdash

import (
	"context"
	"encoding/binary"
	"math/rand"
	"time"

	"go.einride.tech/can"
)

type fakeConnection struct {
	latency time.Duration
	ticker  *time.Ticker
	canID   uint32
	next    int
}

// NewFakeConnection returns a new Connection that
// isn't connected to a real device. It returns a fake
// frame for the next slot on an interval based on the
// given latency, cycling through every slot.
func NewFakeConnection(latency time.Duration) Connection {
	return &fakeConnection{latency: latency, canID: DefaultCANID}
}

// NextFrame waits for the connection's latency and then returns
// a frame.
func (c *fakeConnection) NextFrame(ctx context.Context) (can.Frame, error) {
	if c.ticker == nil {
		c.ticker = time.NewTicker(c.latency)
	}

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case <-c.ticker.C:
	}

	f := can.Frame{ID: c.canID, Length: uint8(FrameSize)}
	f.Data[FrameIndexSlot] = byte(c.next)
	for _, i := range []int{FrameIndexWordA, FrameIndexWordB, FrameIndexWordC} {
		binary.LittleEndian.PutUint16(f.Data[i:], uint16(rand.Intn(200)+1))
	}

	c.next = (c.next + 1) % SlotCount
	return f, nil
}

// Close stops the ticker.
func (c *fakeConnection) Close() error {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	return nil
}
