package genericdash

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"go.einride.tech/can"
)

// Frame is a single Generic Dash CAN frame payload.
// The format is:
//
//	Slot identifier (0-13)
//	Reserved (always 0)
//	Word A (little-endian uint16)
//	Word B (little-endian uint16)
//	Word C (little-endian uint16)
type Frame [FrameSize]byte

// Constant values used to describe pieces of a frame.
const (
	FrameIndexSlot     int = 0
	FrameIndexReserved int = 1
	FrameIndexWordA    int = 2
	FrameIndexWordB    int = 4
	FrameIndexWordC    int = 6

	FrameSize int = 8

	// SlotCount is the number of frames making up a full Generic Dash cycle.
	SlotCount int = 14

	// DefaultCANID is the CAN identifier the ECU broadcasts Generic Dash on
	// unless configured otherwise.
	DefaultCANID uint32 = 0x3e8
)

var (
	// ErrInvalidSlot is returned when a frame's slot identifier is outside
	// the range of known slots.
	ErrInvalidSlot = errors.New("invalid slot identifier")

	// ErrReservedByte is returned when a frame's reserved byte isn't zero.
	ErrReservedByte = errors.New("reserved byte is not zero")

	// ErrFrameLength is returned when building a frame from a payload that
	// isn't exactly FrameSize bytes long.
	ErrFrameLength = errors.New("invalid frame length")

	// ErrRemoteFrame is returned when building a frame from a CAN remote
	// frame, which carries no payload.
	ErrRemoteFrame = errors.New("remote frames carry no payload")
)

// Slot returns the slot identifier of the frame.
func (f Frame) Slot() int {
	return int(f[FrameIndexSlot])
}

// Validate checks the slot identifier and the reserved byte.
func (f Frame) Validate() error {
	if f.Slot() >= SlotCount {
		return errors.Wrapf(ErrInvalidSlot, "slot %d", f.Slot())
	}
	if f[FrameIndexReserved] != 0 {
		return errors.Wrapf(ErrReservedByte, "got 0x%x", f[FrameIndexReserved])
	}
	return nil
}

// FrameFromBytes copies b into a Frame. b must be exactly FrameSize bytes.
func FrameFromBytes(b []byte) (Frame, error) {
	var f Frame
	if len(b) != FrameSize {
		return f, errors.Wrapf(ErrFrameLength, "got %d bytes", len(b))
	}
	copy(f[:], b)
	return f, nil
}

// FrameFromCAN extracts the Generic Dash payload from a CAN frame.
func FrameFromCAN(cf can.Frame) (Frame, error) {
	var f Frame
	if cf.IsRemote {
		return f, errors.Wrapf(ErrRemoteFrame, "id 0x%x", cf.ID)
	}
	if int(cf.Length) != FrameSize {
		return f, errors.Wrapf(ErrFrameLength, "got dlc %d", cf.Length)
	}
	copy(f[:], cf.Data[:])
	return f, nil
}

// FrameStore holds the most recent frame received for every slot. The zero
// value is ready to use and decodes every parameter from all-zero bytes.
//
// FrameStore does no locking. Callers sharing a store between goroutines must
// serialize Ingest against every read.
type FrameStore struct {
	slots [SlotCount]Frame
}

// NewFrameStore returns an empty FrameStore.
func NewFrameStore() *FrameStore {
	return &FrameStore{}
}

// Ingest validates f and stores it in its slot, replacing whatever the slot
// held before. Nothing is written when validation fails.
func (s *FrameStore) Ingest(f Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s.slots[f.Slot()] = f
	return nil
}

// Slot returns a copy of the frame currently held in the given slot.
func (s *FrameStore) Slot(id int) (Frame, error) {
	if id < 0 || id >= SlotCount {
		return Frame{}, errors.Wrapf(ErrInvalidSlot, "slot %d", id)
	}
	return s.slots[id], nil
}

// Reset zeroes every slot.
func (s *FrameStore) Reset() {
	s.slots = [SlotCount]Frame{}
}

// word reads the little-endian word at offset within the given slot.
func (s *FrameStore) word(slot, offset int) uint16 {
	return binary.LittleEndian.Uint16(s.slots[slot][offset:])
}
