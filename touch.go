package tactile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// TouchState is the phase of a single finger contact.
type TouchState uint8

const (
	TouchDown  TouchState = iota // first contact
	TouchUp                      // finger lifted
	TouchMoved                   // position changed while down
)

func (s TouchState) String() string {
	switch s {
	case TouchDown:
		return "down"
	case TouchUp:
		return "up"
	case TouchMoved:
		return "moved"
	}
	return fmt.Sprintf("TouchState(%d)", uint8(s))
}

// RefreshRate is the display cadence velocities are expressed against:
// Velocity returns units per frame at this rate.
const RefreshRate = 60.0

const historyLen = 3

// TouchKey is the identity of a touch: ids are only unique per screen.
type TouchKey struct {
	ID     int32
	Screen int32
}

type touchSample struct {
	pos  Vec2
	time float64
}

// Touch is a single finger contact. Two touches are the same logical touch
// iff their ID and Screen match; Position and State describe an update.
// Touch is a value type: assigning it copies the identity and history.
type Touch struct {
	ID       int32
	Screen   int32
	State    TouchState
	Position Vec2

	// Time is the sender's timestamp in seconds. Zero when the source
	// does not provide one.
	Time float64

	history [historyLen]touchSample
	samples int
}

// NewTouch creates a touch and seeds its velocity history.
func NewTouch(id, screen int32, state TouchState, pos Vec2, time float64) Touch {
	t := Touch{ID: id, Screen: screen, State: state, Position: pos, Time: time}
	t.record()
	return t
}

// Key returns the touch identity.
func (t Touch) Key() TouchKey {
	return TouchKey{ID: t.ID, Screen: t.Screen}
}

// Same reports whether t and o are the same logical touch.
func (t Touch) Same(o Touch) bool {
	return t.ID == o.ID && t.Screen == o.Screen
}

// Update merges position, state, and time from o when o is the same logical
// touch. It is a no-op otherwise.
func (t *Touch) Update(o Touch) {
	if !t.Same(o) {
		return
	}
	t.Position = o.Position
	t.State = o.State
	t.Time = o.Time
	t.record()
}

func (t *Touch) record() {
	if t.samples == historyLen {
		copy(t.history[:], t.history[1:])
		t.samples--
	}
	t.history[t.samples] = touchSample{pos: t.Position, time: t.Time}
	t.samples++
}

// Velocity returns the touch's velocity over its recent samples in units per
// frame at [RefreshRate]. Zero until two samples with distinct times exist.
func (t Touch) Velocity() Vec2 {
	if t.samples < 2 {
		return Vec2{}
	}
	first := t.history[0]
	last := t.history[t.samples-1]
	dt := last.time - first.time
	if dt <= 0 {
		return Vec2{}
	}
	return last.pos.Sub(first.pos).Scale(1 / dt / RefreshRate)
}

// --- Wire format ---
//
// Little-endian, size-prefixed:
//
//	[u32 size][i32 id][i32 screen][u8 state][f64 x][f64 y]([f32 time])
//
// size counts the whole packet including itself. The trailing time is
// present when size is at least TimedPacketSize.

const (
	// PacketSize is the length of a packet without a timestamp.
	PacketSize = 4 + 4 + 4 + 1 + 8 + 8
	// TimedPacketSize is the length of a packet carrying a timestamp.
	TimedPacketSize = PacketSize + 4
)

var (
	// ErrShortPacket is returned when fewer bytes are available than the
	// packet header declares.
	ErrShortPacket = errors.New("tactile: short touch packet")
	// ErrBadPacketSize is returned when the declared size cannot hold a
	// touch.
	ErrBadPacketSize = errors.New("tactile: bad touch packet size")
	// ErrUnknownState is returned when the state byte is not a known
	// TouchState.
	ErrUnknownState = errors.New("tactile: unknown touch state")
	// ErrBadCoordinate is returned when x or y is NaN or infinite.
	ErrBadCoordinate = errors.New("tactile: non-finite touch coordinate")
)

// AppendPacket appends t's wire encoding to buf. A timestamp is written when
// t.Time is non-zero.
func (t Touch) AppendPacket(buf []byte) []byte {
	size := PacketSize
	if t.Time != 0 {
		size = TimedPacketSize
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(t.ID))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Screen))
	buf = append(buf, byte(t.State))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(t.Position.X))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(t.Position.Y))
	if size == TimedPacketSize {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(t.Time)))
	}
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t Touch) MarshalBinary() ([]byte, error) {
	return t.AppendPacket(make([]byte, 0, TimedPacketSize)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Touch) UnmarshalBinary(data []byte) error {
	d, _, err := DecodeTouch(data)
	if err != nil {
		return err
	}
	*t = d
	return nil
}

// DecodeTouch decodes the packet at the start of data and returns the touch
// and the number of bytes consumed.
func DecodeTouch(data []byte) (Touch, int, error) {
	if len(data) < 4 {
		return Touch{}, 0, ErrShortPacket
	}
	size := binary.LittleEndian.Uint32(data)
	if size < PacketSize {
		return Touch{}, 0, fmt.Errorf("%w: %d", ErrBadPacketSize, size)
	}
	if uint64(len(data)) < uint64(size) {
		return Touch{}, 0, ErrShortPacket
	}
	state := TouchState(data[12])
	if state > TouchMoved {
		return Touch{}, 0, fmt.Errorf("%w: %d", ErrUnknownState, data[12])
	}
	pos := Vec2{
		X: math.Float64frombits(binary.LittleEndian.Uint64(data[13:])),
		Y: math.Float64frombits(binary.LittleEndian.Uint64(data[21:])),
	}
	if !finite(pos.X) || !finite(pos.Y) {
		return Touch{}, 0, fmt.Errorf("%w: (%v, %v)", ErrBadCoordinate, pos.X, pos.Y)
	}
	var tm float64
	if size >= TimedPacketSize {
		tm = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[29:])))
	}
	t := NewTouch(
		int32(binary.LittleEndian.Uint32(data[4:])),
		int32(binary.LittleEndian.Uint32(data[8:])),
		state,
		pos,
		tm,
	)
	return t, int(size), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DecodeTouches decodes every packet in data. Decoding stops at the first
// malformed packet; the touches decoded before it are returned with the
// error.
func DecodeTouches(data []byte) ([]Touch, error) {
	var out []Touch
	for len(data) > 0 {
		t, n, err := DecodeTouch(data)
		if err != nil {
			return out, err
		}
		out = append(out, t)
		data = data[n:]
	}
	return out, nil
}

// ReadTouch reads one size-prefixed packet from r. Bytes beyond the fields
// this package knows about are skipped.
func ReadTouch(r io.Reader) (Touch, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Touch{}, err
	}
	size := binary.LittleEndian.Uint32(header[:])
	if size < PacketSize || size > 1<<16 {
		return Touch{}, fmt.Errorf("%w: %d", ErrBadPacketSize, size)
	}
	buf := make([]byte, size)
	copy(buf, header[:])
	if _, err := io.ReadFull(r, buf[4:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Touch{}, err
	}
	t, _, err := DecodeTouch(buf)
	return t, err
}
