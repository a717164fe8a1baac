package sim

import "github.com/ardnew/softwire/wire/hal"

// Target is a simulated device attached to the bus.
//
// AckAddress is called once per address phase and doubles as the
// start-of-transaction notification. WriteByte consumes one master-written
// byte, returning false to NACK it. ReadByte supplies one byte for a
// master read.
type Target interface {
	AckAddress(dir hal.Direction) bool
	WriteByte(b byte) bool
	ReadByte() byte
}

// MemTarget is a register-file target in the style of a 24Cxx serial
// EEPROM: the first byte of a write transaction sets the memory pointer,
// subsequent bytes are stored at the auto-incrementing pointer, and reads
// stream from the pointer onward. The pointer wraps at the end of memory.
type MemTarget struct {
	Mem []byte

	// WriteLimit, when positive, is the number of data bytes accepted per
	// transaction before the target begins NACKing (pointer bytes do not
	// count). Zero accepts everything.
	WriteLimit int

	ptr       int
	expectPtr bool
	accepted  int
}

// NewMemTarget creates a memory target of the given size.
func NewMemTarget(size int) *MemTarget {
	return &MemTarget{Mem: make([]byte, size)}
}

// AckAddress acknowledges every address phase and marks the start of a
// transaction.
func (t *MemTarget) AckAddress(dir hal.Direction) bool {
	if dir == hal.DirWrite {
		t.expectPtr = true
	}
	t.accepted = 0
	return true
}

// WriteByte consumes a master-written byte: the first byte of a write
// transaction sets the pointer, the rest store through it.
func (t *MemTarget) WriteByte(b byte) bool {
	if t.expectPtr {
		t.ptr = int(b) % len(t.Mem)
		t.expectPtr = false
		return true
	}
	if t.WriteLimit > 0 && t.accepted >= t.WriteLimit {
		return false
	}
	t.Mem[t.ptr] = b
	t.ptr = (t.ptr + 1) % len(t.Mem)
	t.accepted++
	return true
}

// ReadByte supplies the byte at the pointer and advances it.
func (t *MemTarget) ReadByte() byte {
	b := t.Mem[t.ptr]
	t.ptr = (t.ptr + 1) % len(t.Mem)
	return b
}

// FuncTarget adapts three closures into a Target. Nil fields default to
// acknowledging addresses, accepting writes, and reading 0xFF.
type FuncTarget struct {
	Ack   func(dir hal.Direction) bool
	Write func(b byte) bool
	Read  func() byte
}

// AckAddress invokes Ack, defaulting to true.
func (t *FuncTarget) AckAddress(dir hal.Direction) bool {
	if t.Ack == nil {
		return true
	}
	return t.Ack(dir)
}

// WriteByte invokes Write, defaulting to true.
func (t *FuncTarget) WriteByte(b byte) bool {
	if t.Write == nil {
		return true
	}
	return t.Write(b)
}

// ReadByte invokes Read, defaulting to 0xFF.
func (t *FuncTarget) ReadByte() byte {
	if t.Read == nil {
		return 0xFF
	}
	return t.Read()
}

// Compile-time interface checks
var (
	_ Target = (*MemTarget)(nil)
	_ Target = (*FuncTarget)(nil)
)
