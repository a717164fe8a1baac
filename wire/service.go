package wire

import (
	"github.com/ardnew/softwire/wire/hal"
)

// underrunByte is sent to the master when it reads past the end of the
// transmit queue, rather than stalling the bus.
const underrunByte = 0xFF

// busEvent is the dispatcher's classification of the peripheral's current
// condition flags.
type busEvent uint8

const (
	eventNone         busEvent = iota // Nothing to do, or not in slave role
	eventTransferEnd                  // Stop, or restart beginning a new write
	eventAddressMatch                 // New transaction addressed to us
	eventDataReady                    // A data byte is pending
)

// classify maps the HAL's reported condition flags to a dispatcher event.
// It is a pure function of the flags: all side effects stay in Service.
// Priority order matters: a restart that opens a write transaction must be
// treated as the end of the previous one before the new address match is
// considered.
func classify(h hal.BusHAL) busEvent {
	if !h.IsPeripheral() {
		return eventNone
	}
	switch {
	case h.IsStopDetected() ||
		(h.IsAddressMatch() && h.IsRestartDetected() && !h.IsControllerReadOperation()):
		return eventTransferEnd
	case h.IsAddressMatch():
		return eventAddressMatch
	case h.IsDataReady():
		return eventDataReady
	default:
		return eventNone
	}
}

// Service runs the slave event dispatcher. It is invoked once per relevant
// peripheral interrupt by the controller's interrupt binding (see
// [ServiceIRQ]) and must run to completion without re-entry.
//
// The dispatcher keeps no state of its own between invocations: every
// decision is driven by the condition flags the HAL reports, plus the
// shared transmit/receive queues.
func (c *Controller) Service() {
	switch classify(c.hal) {
	case eventTransferEnd:
		c.hal.PrepareAck()
		c.hal.IssueCommand(hal.CmdAdvance)

		// Hand the buffered bytes to the application. The callback runs
		// in the interrupt context and must not block.
		if c.onReceive != nil {
			c.onReceive(c.rx.Available())
		}

		c.rx.Clear()

	case eventAddressMatch:
		c.hal.PrepareAck()
		c.hal.IssueCommand(hal.CmdAdvance)

		if c.hal.IsControllerReadOperation() {
			// The master wants to read from us: let the application
			// populate the transmit queue before the first byte goes out.
			c.tx.Clear()

			c.transmissionBegun = true

			if c.onRequest != nil {
				c.onRequest()
			}
		}

	case eventDataReady:
		if c.hal.IsControllerReadOperation() {
			b := byte(underrunByte)

			if c.tx.Available() > 0 {
				b = byte(c.tx.Read())
			}

			c.transmissionBegun = c.hal.SendByteAsPeripheral(b)
		} else {
			if c.rx.Full() {
				// Refuse the byte; the master sees backpressure.
				c.hal.PrepareNack()
			} else {
				c.rx.Store(c.hal.ReadByte())

				c.hal.PrepareAck()
			}

			c.hal.IssueCommand(hal.CmdAdvance)
		}
	}
}
