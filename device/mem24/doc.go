// Package mem24 provides a client for 24Cxx serial EEPROMs on a two-wire
// bus, built on [github.com/ardnew/softwire/wire.Controller].
//
// A [Device] exposes the EEPROM's memory array through the standard
// [io.Reader], [io.Writer], and [io.Seeker] interfaces, handling the
// device's page-write chunking, post-write settle time, and the address
// block aliasing used by parts larger than 256 bytes.
package mem24
