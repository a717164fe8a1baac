package wire

import (
	"github.com/ardnew/softwire/pkg"
	"github.com/ardnew/softwire/wire/hal"
)

// DefaultClock is the bus clock rate used by Begin, in Hz (standard mode).
const DefaultClock uint32 = 100_000

// Role identifies the bus role a controller is operating in.
type Role uint8

// Bus roles.
const (
	RoleNone       Role = iota // Not started
	RoleController             // Bus master
	RolePeripheral             // Bus slave
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleController:
		return "controller"
	case RolePeripheral:
		return "peripheral"
	default:
		return "none"
	}
}

// Controller is a two-wire bus transaction engine bound to one physical
// bus peripheral through a [hal.BusHAL].
//
// In master role it drives synchronous write (BeginTransmission, Write,
// EndTransmission) and read (RequestFrom) transactions. In slave role its
// Service method is invoked by the peripheral's interrupt binding and
// dispatches bus events to the registered OnReceive and OnRequest callbacks.
//
// A Controller is created once per physical peripheral and never destroyed.
// Master transactions and the slave dispatcher share the transmit and
// receive queues without a lock: correctness relies on the two roles being
// mutually exclusive and on the interrupt context running to completion
// without re-entry, which the hardware (or the host binding) must guarantee.
type Controller struct {
	hal hal.BusHAL

	role Role
	rx   Ring
	tx   Ring

	// Master write state
	txAddress         uint8
	transmissionBegun bool

	// Last explicitly configured clock rate, re-applied to recover the
	// bus after a timeout.
	activeClock uint32

	// Slave-mode hooks
	onReceive func(count int)
	onRequest func()
}

// NewController creates a controller driving the given bus HAL.
// The controller is idle until Begin or BeginPeripheral is called.
func NewController(h hal.BusHAL) *Controller {
	return &Controller{hal: h}
}

// Begin starts the controller in master role at [DefaultClock].
func (c *Controller) Begin() {
	c.activeClock = DefaultClock
	c.hal.InitController(DefaultClock)
	c.hal.Enable()
	c.role = RoleController
	pkg.LogInfo(pkg.ComponentController, "started", "role", c.role.String(), "clockHz", c.activeClock)
}

// BeginPeripheral starts the controller in slave role listening on the
// given 7-bit address. If generalCall is true the peripheral also answers
// the general call address.
func (c *Controller) BeginPeripheral(addr uint8, generalCall bool) {
	c.hal.InitPeripheral(addr, generalCall)
	c.hal.Enable()
	c.role = RolePeripheral
	pkg.LogInfo(pkg.ComponentController, "started", "role", c.role.String(), "addr", addr, "generalCall", generalCall)
}

// SetClock reconfigures the bus clock rate in Hz. The peripheral is
// reinitialized in master role; the rate is remembered for bus recovery.
func (c *Controller) SetClock(clockHz uint32) {
	c.activeClock = clockHz

	c.hal.Disable()
	c.hal.InitController(clockHz)
	c.hal.Enable()
	c.role = RoleController
}

// End disables the peripheral and returns the controller to the idle role.
func (c *Controller) End() {
	c.hal.Disable()
	c.role = RoleNone
}

// Role returns the controller's current bus role.
func (c *Controller) Role() Role {
	return c.role
}

// BeginTransmission opens a buffered write transaction to the given target
// address. No bus activity occurs until EndTransmission.
func (c *Controller) BeginTransmission(addr uint8) {
	c.txAddress = addr
	c.tx.Clear()

	c.transmissionBegun = true
}

// Write appends one byte to the open write transaction. It returns false,
// storing nothing, if no transaction is open or the transmit queue is full;
// this is a best-effort buffered writer, so callers detect truncation only
// through the return value.
func (c *Controller) Write(b byte) bool {
	if !c.transmissionBegun || c.tx.Full() {
		return false
	}
	return c.tx.Store(b)
}

// WriteBytes appends a slice of bytes to the open write transaction and
// returns the count actually stored, which is less than len(p) if the
// transmit queue fills.
func (c *Controller) WriteBytes(p []byte) int {
	for i, b := range p {
		if !c.Write(b) {
			return i
		}
	}
	return len(p)
}

// EndTransmission transmits the buffered write transaction on the bus and
// reports its status. If sendStop is false and the bus is still owned, the
// bus is left claimed for a subsequent repeated start.
//
// On timeout the bus is reset to the last configured clock rate and
// [pkg.TxTimeout] overrides any earlier status.
func (c *Controller) EndTransmission(sendStop bool) pkg.TxStatus {
	status := pkg.TxSuccess

	c.transmissionBegun = false

	if !c.hal.StartTransaction(c.txAddress, hal.DirWrite) {
		status = pkg.TxAddressNack
	}

	owner := c.hal.IsBusOwner()
	if status == pkg.TxSuccess {
		for c.tx.Available() > 0 && owner {
			if !c.hal.SendByte(byte(c.tx.Read())) {
				status = pkg.TxDataNack
				c.tx.Clear()
				break
			}
			owner = c.hal.IsBusOwner()
		}
	}

	// Stop if we still have control of the bus, or hit an error.
	if (sendStop && owner) || status != pkg.TxSuccess {
		c.hal.IssueCommand(hal.CmdStop)
	}

	if c.hal.DidTimeout() {
		c.resetBus()
		status = pkg.TxTimeout
	}

	if status != pkg.TxSuccess {
		pkg.LogDebug(pkg.ComponentMaster, "write transaction failed",
			"addr", c.txAddress, "status", status.String())
	}
	return status
}

// EndTransmissionStop is EndTransmission with a stop condition, the
// common case.
func (c *Controller) EndTransmissionStop() pkg.TxStatus {
	return c.EndTransmission(true)
}

// RequestFrom reads up to quantity bytes from the target at addr into the
// receive queue and returns the number of bytes read. If sendStop is false
// and the bus is still owned, the bus is left claimed for a repeated start.
//
// The last byte clocked in before an ownership loss or timeout is presumed
// invalid and not counted. On timeout the bus is reset, the receive queue
// is emptied, and zero is returned: a timed-out read yields nothing.
func (c *Controller) RequestFrom(addr uint8, quantity int, sendStop bool) int {
	if quantity <= 0 {
		return 0
	}

	read := 0
	owner := true

	c.rx.Clear()

	if c.hal.StartTransaction(addr, hal.DirRead) {
		// The peripheral has already clocked in the first byte.
		c.rx.Store(c.hal.ReadByte())

		for read = 1; read < quantity && !c.hal.DidTimeout(); read++ {
			owner = c.hal.IsBusOwner()
			if !owner {
				break
			}

			// ACK the byte and clock in the next one.
			c.hal.PrepareAck()
			c.hal.IssueCommand(hal.CmdRead)

			c.rx.Store(c.hal.ReadByte())
		}

		// Signal the target that no more bytes are wanted.
		c.hal.PrepareNack()

		if owner {
			owner = c.hal.IsBusOwner()
		}
		if !owner || c.hal.DidTimeout() {
			// The last clocked byte is garbage.
			read--
			if read < 0 {
				read = 0
			}
		}
	}

	// Stop if we still have control of the bus, or unconditionally on
	// timeout.
	if (sendStop && owner) || c.hal.DidTimeout() {
		c.hal.IssueCommand(hal.CmdStop)
	}

	if c.hal.DidTimeout() {
		c.resetBus()
		c.rx.Clear()
		return 0
	}

	return read
}

// RequestFromDefault is RequestFrom with a stop condition, the common case.
func (c *Controller) RequestFromDefault(addr uint8, quantity int) int {
	return c.RequestFrom(addr, quantity, true)
}

// Available returns the number of received bytes waiting to be read.
func (c *Controller) Available() int {
	return c.rx.Available()
}

// Read removes and returns the oldest received byte, or -1 if none.
func (c *Controller) Read() int {
	return c.rx.Read()
}

// Peek returns the oldest received byte without removing it, or -1 if none.
func (c *Controller) Peek() int {
	return c.rx.Peek()
}

// Flush does nothing; use EndTransmission to force a data transfer.
func (c *Controller) Flush() {}

// OnReceive registers the slave-mode callback invoked when a master write
// to this controller completes. The callback receives the number of bytes
// available to Read and runs in the interrupt context: it must be fast and
// must not block.
func (c *Controller) OnReceive(fn func(count int)) {
	c.onReceive = fn
}

// OnRequest registers the slave-mode callback invoked when a master
// addresses this controller for reading, so the application can populate
// the transmit queue with Write before the first byte is clocked out.
// It runs in the interrupt context: it must be fast and must not block.
func (c *Controller) OnRequest(fn func()) {
	c.onRequest = fn
}

// resetBus recovers from a bus timeout by reinitializing the peripheral in
// master role at the last configured clock rate, returning the bus to a
// known-good state instead of leaving it wedged.
func (c *Controller) resetBus() {
	pkg.LogWarn(pkg.ComponentMaster, "bus timeout, resetting", "clockHz", c.activeClock)
	c.SetClock(c.activeClock)
	c.transmissionBegun = false
}
