// Package hal defines the Hardware Abstraction Layer interface between the
// softwire controller core and two-wire (I2C) peripheral hardware.
//
// The [BusHAL] interface exposes generic operations for peripheral
// lifecycle, master transaction sequencing, ACK/NACK preparation, and
// slave-side condition readback, allowing platform vendors to provide
// concrete implementations without changing the controller core.
//
// A simulated in-memory implementation for hosted tests and examples is
// available in [github.com/ardnew/softwire/wire/hal/sim].
package hal
