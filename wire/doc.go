// Package wire implements a pure-Go two-wire (I2C) bus transaction engine.
//
// It mediates all byte-level traffic between application code and the
// physical bus, and interacts with hardware only via the [hal.BusHAL]
// interface defined in [github.com/ardnew/softwire/wire/hal]. The HAL
// exposes the register-level operations (start/stop conditions, byte
// shifting, ACK/NACK preparation, condition flag readback), allowing
// platform vendors to provide concrete implementations without changing
// the engine.
//
// # Architecture
//
//   - [Ring] is a fixed-capacity FIFO byte queue used for both the
//     transmit and receive sides of a transaction
//   - [Controller] owns the queues and drives master transactions
//     synchronously: BeginTransmission/Write/EndTransmission for bus
//     writes, RequestFrom for bus reads
//   - [Controller.Service] is the slave event dispatcher, invoked once per
//     peripheral interrupt; it classifies the current bus condition and
//     drives the receive/request protocol through user callbacks
//   - [BindIRQ] and [ServiceIRQ] form the fixed-slot binding table between
//     interrupt lines and controller instances
//
// # Master transactions
//
// Write transactions are buffered: Write appends to the transmit queue and
// EndTransmission drives the bus, returning a [pkg.TxStatus] with the
// classic error codes (0 success, 2 address NACK, 3 data NACK, 4 timeout).
// Read transactions clock bytes into the receive queue, consumed with
// Available/Read/Peek. Both loops stop issuing clock pulses the instant
// bus ownership is lost, since arbitration on a multi-master bus can take
// the bus away mid-transaction.
//
// On a bus timeout (a target stretching the clock indefinitely), the
// controller resets the peripheral to the last configured clock rate and
// reports the transaction as failed; a hung bus is never left wedged.
//
// # Slave role
//
// In slave role the application registers OnReceive and OnRequest
// callbacks and arranges for Service to run on the peripheral's interrupt.
// Received bytes are handed to OnReceive when the master ends its write;
// OnRequest fills the transmit queue before the first byte of a master
// read is clocked out. If the master reads past the end of the transmit
// queue, the engine sends 0xFF rather than stalling the bus.
//
// # Concurrency
//
// Master transactions run in the application context; the dispatcher runs
// in the interrupt context. They share the queues and transaction flag
// without a lock: correctness relies on the two roles being mutually
// exclusive on a given controller and on the interrupt context running to
// completion without re-entry. Hardware interrupt bindings provide that
// guarantee natively; hosted environments must serialize Service calls
// against master transactions themselves.
//
// # Zero-Allocation Design
//
// The engine is designed for bare-metal and TinyGo compatibility: queue
// storage is fixed arrays, no allocation occurs after construction, and
// the dispatcher performs no blocking operations.
//
// # Example
//
//	ctrl := wire.NewController(h)
//	ctrl.Begin()
//	ctrl.BeginTransmission(0x50)
//	ctrl.Write(0x01)
//	ctrl.Write(0x02)
//	if status := ctrl.EndTransmission(true); status != pkg.TxSuccess {
//	    // handle status.Error()
//	}
//
// A simulated HAL for hosted testing is available in
// [github.com/ardnew/softwire/wire/hal/sim].
package wire
