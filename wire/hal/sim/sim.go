package sim

import (
	"sync"

	"github.com/ardnew/softwire/pkg"
	"github.com/ardnew/softwire/wire/hal"
)

// OpKind identifies a recorded bus operation.
type OpKind uint8

// Recorded operation kinds.
const (
	OpInitController OpKind = iota
	OpInitPeripheral
	OpEnable
	OpDisable
	OpStart
	OpSend
	OpRead
	OpAck
	OpNack
	OpCommand
	OpSendPeripheral
)

// String returns a human-readable operation name.
func (k OpKind) String() string {
	switch k {
	case OpInitController:
		return "init-controller"
	case OpInitPeripheral:
		return "init-peripheral"
	case OpEnable:
		return "enable"
	case OpDisable:
		return "disable"
	case OpStart:
		return "start"
	case OpSend:
		return "send"
	case OpRead:
		return "read"
	case OpAck:
		return "ack"
	case OpNack:
		return "nack"
	case OpCommand:
		return "command"
	case OpSendPeripheral:
		return "send-peripheral"
	default:
		return "unknown"
	}
}

// Op is one entry in the HAL's operation trace.
type Op struct {
	Kind OpKind
	Addr uint8         // OpStart, OpInitPeripheral
	Dir  hal.Direction // OpStart
	Byte byte          // OpSend, OpRead, OpSendPeripheral
	Cmd  hal.Command   // OpCommand
	OK   bool          // OpStart, OpSend, OpSendPeripheral: acknowledged
}

// HAL is an in-memory simulated two-wire bus peripheral implementing
// [hal.BusHAL] for hosted tests and examples.
//
// Master-side operations are served by [Target] implementations registered
// per bus address. Every operation is appended to a trace retrievable with
// Ops, so tests can assert exact bus-level sequencing. Fault injection
// knobs simulate address NACKs, lost arbitration, and bus timeouts.
//
// Slave-side condition flags are set with the Raise methods and cleared by
// the advance command, letting tests drive a controller's Service
// synchronously.
type HAL struct {
	mu      sync.Mutex
	targets map[uint8]Target
	ops     []Op

	// Fault injection. FailAddress NACKs every address phase.
	// LoseBusAfter reports lost bus ownership after that many data bytes
	// have transferred (zero disables). TimeoutAfterOps latches the
	// timeout flag after that many master operations (zero disables).
	FailAddress     bool
	LoseBusAfter    int
	TimeoutAfterOps int

	// PeriphAck is the master's acknowledgment of slave-transmitted
	// bytes; false simulates the master signaling "no more bytes".
	PeriphAck bool

	enabled     bool
	slave       bool
	clockHz     uint32
	slaveAddr   uint8
	generalCall bool

	// In-flight master transaction
	cur     Target
	curDir  hal.Direction
	started bool
	shift   byte // last byte clocked in

	opCount   int
	byteCount int
	timedOut  bool

	// Slave condition flags
	addrMatch  bool
	stopDet    bool
	restartDet bool
	masterRead bool
	dataReady  bool
	pendingIn  byte
}

// New creates a simulated bus with no targets attached.
func New() *HAL {
	return &HAL{
		targets:   make(map[uint8]Target),
		PeriphAck: true,
	}
}

// Attach registers a target at the given 7-bit bus address, replacing any
// previous target at that address.
func (h *HAL) Attach(addr uint8, t Target) {
	h.mu.Lock()
	h.targets[addr] = t
	h.mu.Unlock()
	pkg.LogDebug(pkg.ComponentSim, "target attached", "addr", addr)
}

// Detach removes the target at the given address.
func (h *HAL) Detach(addr uint8) {
	h.mu.Lock()
	delete(h.targets, addr)
	h.mu.Unlock()
}

// Ops returns a copy of the operation trace.
func (h *HAL) Ops() []Op {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Op, len(h.ops))
	copy(out, h.ops)
	return out
}

// ClearOps discards the operation trace.
func (h *HAL) ClearOps() {
	h.mu.Lock()
	h.ops = nil
	h.mu.Unlock()
}

// ClockHz returns the clock rate of the most recent InitController.
func (h *HAL) ClockHz() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clockHz
}

// Enabled reports whether the simulated peripheral is enabled.
func (h *HAL) Enabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enabled
}

func (h *HAL) record(op Op) {
	h.ops = append(h.ops, op)
}

// tick advances the master operation counter and latches the timeout flag
// once the injected threshold is crossed.
func (h *HAL) tick() {
	h.opCount++
	if h.TimeoutAfterOps > 0 && h.opCount >= h.TimeoutAfterOps {
		h.timedOut = true
	}
}

// InitController configures the simulated peripheral as bus master.
// Reinitialization clears the timeout flag, as on real hardware.
func (h *HAL) InitController(clockHz uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clockHz = clockHz
	h.slave = false
	h.timedOut = false
	h.opCount = 0
	h.byteCount = 0
	h.started = false
	h.cur = nil
	h.record(Op{Kind: OpInitController})
}

// InitPeripheral configures the simulated peripheral as bus slave.
func (h *HAL) InitPeripheral(addr uint8, generalCall bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.slaveAddr = addr
	h.generalCall = generalCall
	h.slave = true
	h.timedOut = false
	h.record(Op{Kind: OpInitPeripheral, Addr: addr})
}

// Enable activates the simulated peripheral.
func (h *HAL) Enable() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enabled = true
	h.record(Op{Kind: OpEnable})
}

// Disable deactivates the simulated peripheral.
func (h *HAL) Disable() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enabled = false
	h.record(Op{Kind: OpDisable})
}

// StartTransaction issues the address phase toward the attached target.
func (h *HAL) StartTransaction(addr uint8, dir hal.Direction) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tick()

	t, present := h.targets[addr]
	ok := present && !h.FailAddress && t.AckAddress(dir)
	h.record(Op{Kind: OpStart, Addr: addr, Dir: dir, OK: ok})

	if !ok {
		h.started = false
		h.cur = nil
		return false
	}

	h.started = true
	h.cur = t
	h.curDir = dir

	if dir == hal.DirRead {
		// The first byte is clocked in during the address phase.
		h.shift = t.ReadByte()
		h.byteCount++
	}
	return true
}

// IsBusOwner reports simulated bus ownership.
func (h *HAL) IsBusOwner() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.LoseBusAfter > 0 && h.byteCount >= h.LoseBusAfter {
		return false
	}
	return h.started
}

// DidTimeout reports the simulated timeout flag.
func (h *HAL) DidTimeout() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timedOut
}

// SendByte shifts one byte to the in-flight target.
func (h *HAL) SendByte(b byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tick()

	ok := h.started && h.cur != nil && h.cur.WriteByte(b)
	if ok {
		h.byteCount++
	}
	h.record(Op{Kind: OpSend, Byte: b, OK: ok})
	return ok
}

// ReadByte returns the byte most recently clocked in.
func (h *HAL) ReadByte() byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	b := h.shift
	if h.slave {
		b = h.pendingIn
	}
	h.record(Op{Kind: OpRead, Byte: b})
	return b
}

// SendByteAsPeripheral shifts one byte to the master during a slave-mode
// read; the return value is the master's acknowledgment.
func (h *HAL) SendByteAsPeripheral(b byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.record(Op{Kind: OpSendPeripheral, Byte: b, OK: h.PeriphAck})
	h.dataReady = false
	return h.PeriphAck
}

// PrepareAck arms an ACK for the next byte.
func (h *HAL) PrepareAck() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(Op{Kind: OpAck})
}

// PrepareNack arms a NACK for the next byte.
func (h *HAL) PrepareNack() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(Op{Kind: OpNack})
}

// IssueCommand executes a control-line sequencing command.
//
// CmdRead clocks the next byte in from the in-flight target. CmdStop ends
// the master transaction. CmdAdvance acknowledges and clears the pending
// slave condition flags.
func (h *HAL) IssueCommand(cmd hal.Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.record(Op{Kind: OpCommand, Cmd: cmd})

	switch cmd {
	case hal.CmdRead:
		h.tick()
		if h.started && h.cur != nil && h.curDir == hal.DirRead {
			h.shift = h.cur.ReadByte()
			h.byteCount++
		}
	case hal.CmdStop:
		h.tick()
		h.started = false
		h.cur = nil
	case hal.CmdAdvance:
		h.addrMatch = false
		h.stopDet = false
		h.restartDet = false
		if !h.masterRead {
			h.dataReady = false
		}
	}
}

// IsPeripheral reports whether the peripheral is configured in slave role.
func (h *HAL) IsPeripheral() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.slave
}

// IsAddressMatch reports a pending address-match condition.
func (h *HAL) IsAddressMatch() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addrMatch
}

// IsStopDetected reports a pending stop condition.
func (h *HAL) IsStopDetected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopDet
}

// IsRestartDetected reports a pending restart condition.
func (h *HAL) IsRestartDetected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.restartDet
}

// IsControllerReadOperation reports whether the current slave-side
// transaction is a master read.
func (h *HAL) IsControllerReadOperation() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.masterRead
}

// IsDataReady reports a pending data byte.
func (h *HAL) IsDataReady() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dataReady
}

// RaiseAddressMatch sets the address-match condition for a new slave-side
// transaction in the given direction.
func (h *HAL) RaiseAddressMatch(dir hal.Direction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addrMatch = true
	h.masterRead = dir == hal.DirRead
	h.dataReady = false
	h.stopDet = false
	h.restartDet = false
}

// RaiseDataReady sets the data-ready condition. For a master write the
// pending byte b is what ReadByte returns; for a master read b is ignored.
func (h *HAL) RaiseDataReady(b byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dataReady = true
	h.pendingIn = b
}

// RaiseStop sets the stop-detected condition.
func (h *HAL) RaiseStop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopDet = true
	h.addrMatch = false
	h.dataReady = false
}

// RaiseRestart sets the restart-detected condition together with an
// address match for the new transaction in the given direction.
func (h *HAL) RaiseRestart(dir hal.Direction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.restartDet = true
	h.addrMatch = true
	h.masterRead = dir == hal.DirRead
	h.dataReady = false
}

// Compile-time interface check
var _ hal.BusHAL = (*HAL)(nil)
