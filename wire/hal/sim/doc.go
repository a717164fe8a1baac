// Package sim provides an in-memory simulated two-wire bus HAL for hosted
// tests and examples.
//
// [HAL] implements [github.com/ardnew/softwire/wire/hal.BusHAL] against
// [Target] devices registered per bus address, records a full operation
// trace for sequencing assertions, and offers fault injection for address
// NACKs, lost arbitration, and bus timeouts. Slave-side bus events are
// injected with the Raise methods so a controller's Service dispatcher can
// be driven synchronously.
//
// [MemTarget] is a built-in 24Cxx-style register-file target;
// [FuncTarget] adapts closures for one-off test behaviors.
package sim
