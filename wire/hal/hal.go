package hal

// Direction indicates the data direction of a bus transaction,
// as encoded in the low bit following the 7-bit target address.
type Direction uint8

// Transaction directions.
const (
	DirWrite Direction = 0 // Controller writes to the target
	DirRead  Direction = 1 // Controller reads from the target
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirWrite:
		return "write"
	case DirRead:
		return "read"
	default:
		return "unknown"
	}
}

// Command is a control-line sequencing command issued to the peripheral.
type Command uint8

// Peripheral commands.
const (
	CmdRepeatStart Command = 0x01 // Issue a repeated start condition
	CmdRead        Command = 0x02 // Execute prepared ACK/NACK and clock the next byte
	CmdAdvance     Command = 0x03 // Complete the current bus condition and advance
	CmdStop        Command = 0x04 // Issue a stop condition
)

// String returns a human-readable command name.
func (c Command) String() string {
	switch c {
	case CmdRepeatStart:
		return "repeat-start"
	case CmdRead:
		return "read"
	case CmdAdvance:
		return "advance"
	case CmdStop:
		return "stop"
	default:
		return "unknown"
	}
}

// BusHAL defines the Hardware Abstraction Layer interface for a two-wire
// (I2C) bus peripheral.
//
// The HAL owns all register-level operations: start/stop condition
// generation, clock-rate programming, raw byte shifting, and condition flag
// readback. Platform vendors implement this interface to enable softwire on
// their specific controller hardware; a simulated implementation for hosted
// environments lives in [github.com/ardnew/softwire/wire/hal/sim].
//
// The controller core calls these methods from two execution contexts: the
// application context (master transactions, which poll DidTimeout and
// IsBusOwner between bytes) and the interrupt context (the slave event
// dispatcher). Implementations are not required to be safe for concurrent
// use beyond that pattern; see the wire package documentation.
type BusHAL interface {
	// Lifecycle

	// InitController configures the peripheral as a bus master at the
	// given clock rate in Hz. The peripheral must be disabled first.
	InitController(clockHz uint32)

	// InitPeripheral configures the peripheral as a bus slave listening
	// on the given 7-bit address, optionally answering the general call
	// address as well.
	InitPeripheral(addr uint8, generalCall bool)

	// Enable activates the peripheral on the bus.
	Enable()

	// Disable removes the peripheral from the bus.
	Disable()

	// Master transaction operations

	// StartTransaction issues a start condition and the address phase for
	// a transaction in the given direction. It returns false if the target
	// did not acknowledge its address.
	StartTransaction(addr uint8, dir Direction) bool

	// IsBusOwner reports whether this controller currently owns the bus
	// (it has not lost arbitration to another master).
	IsBusOwner() bool

	// DidTimeout reports whether the peripheral's bus watchdog fired
	// (e.g. a target stretched the clock indefinitely). The flag remains
	// set until the peripheral is reinitialized.
	DidTimeout() bool

	// SendByte shifts one byte out as master. It returns false if the
	// target did not acknowledge the byte.
	SendByte(b byte) bool

	// ReadByte returns the byte most recently shifted in.
	ReadByte() byte

	// SendByteAsPeripheral shifts one byte out as slave in response to a
	// master read. It returns false if the master did not acknowledge,
	// signaling no further bytes are wanted.
	SendByteAsPeripheral(b byte) bool

	// Control-line sequencing

	// PrepareAck arms an ACK to be sent after the next byte.
	PrepareAck()

	// PrepareNack arms a NACK to be sent after the next byte.
	PrepareNack()

	// IssueCommand executes a control-line sequencing command.
	IssueCommand(cmd Command)

	// Slave condition queries

	// IsPeripheral reports whether the peripheral is configured in slave role.
	IsPeripheral() bool

	// IsAddressMatch reports whether an incoming transaction addressed
	// this controller.
	IsAddressMatch() bool

	// IsStopDetected reports whether a stop condition occurred.
	IsStopDetected() bool

	// IsRestartDetected reports whether a restart condition occurred.
	IsRestartDetected() bool

	// IsControllerReadOperation reports whether the current slave-side
	// transaction is a master read (this controller transmits).
	IsControllerReadOperation() bool

	// IsDataReady reports whether a data byte is pending.
	IsDataReady() bool
}
