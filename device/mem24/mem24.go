package mem24

import (
	"io"
	"time"

	"github.com/ardnew/softwire/pkg"
	"github.com/ardnew/softwire/wire"
)

// blockSize is the span of the one-byte memory pointer. Devices larger
// than one block alias the upper blocks onto consecutive bus addresses.
const blockSize = 256

// Config describes the geometry and timing of a 24Cxx serial EEPROM.
type Config struct {
	Size       uint          // Total array size in bytes
	PageSize   uint          // Write page size in bytes (a power of two)
	WriteDelay time.Duration // Settle time after each page write
}

// Configurations for common parts.
var (
	Conf24C02 = Config{Size: 256, PageSize: 8, WriteDelay: 5 * time.Millisecond}
	Conf24C08 = Config{Size: 1024, PageSize: 16, WriteDelay: 5 * time.Millisecond}
)

// Device is a 24Cxx serial EEPROM attached to a two-wire bus, exposed as
// an [io.Reader], [io.Writer], and [io.Seeker] over the memory array.
//
// Reads set the device's memory pointer with a stop-less write transaction
// and stream bytes with a repeated-start read. Writes are chunked to the
// device's page size, pausing WriteDelay after each page for the internal
// write cycle.
type Device struct {
	Config

	bus  *wire.Controller
	addr uint8
	pos  uint
}

// New creates a device at the given 7-bit base bus address.
func New(bus *wire.Controller, addr uint8, conf Config) (*Device, error) {
	if conf.Size == 0 || conf.PageSize == 0 || conf.PageSize&(conf.PageSize-1) != 0 {
		return nil, pkg.ErrInvalidParameter
	}
	if addr > 0x7F {
		return nil, pkg.ErrInvalidParameter
	}
	return &Device{Config: conf, bus: bus, addr: addr}, nil
}

// busAddr returns the bus address serving the block containing pos.
func (d *Device) busAddr(pos uint) uint8 {
	return d.addr + uint8(pos/blockSize)
}

// setPointer writes the device's memory pointer for pos, leaving the bus
// claimed for a repeated start.
func (d *Device) setPointer(pos uint) error {
	d.bus.BeginTransmission(d.busAddr(pos))
	d.bus.Write(uint8(pos % blockSize))
	return d.bus.EndTransmission(false).Error()
}

// Read reads from the array at the current position, advancing it.
// It returns io.EOF at the end of the array.
func (d *Device) Read(p []byte) (int, error) {
	end := d.pos + uint(len(p))
	if end > d.Size {
		end = d.Size
	}
	if end == d.pos {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}

	total := 0
	for d.pos < end {
		// Stay inside the current address block.
		chunk := blockSize - d.pos%blockSize
		if rem := end - d.pos; chunk > rem {
			chunk = rem
		}

		if err := d.setPointer(d.pos); err != nil {
			return total, err
		}

		got := d.bus.RequestFrom(d.busAddr(d.pos), int(chunk), true)
		for i := 0; i < got; i++ {
			p[total] = byte(d.bus.Read())
			total++
		}
		d.pos += uint(got)

		if uint(got) < chunk {
			pkg.LogWarn(pkg.ComponentDevice, "short read", "want", chunk, "got", got)
			return total, pkg.ErrBusFault
		}
	}

	return total, nil
}

// Write writes to the array at the current position, advancing it.
// It returns io.EOF with a short count if the array ends mid-write.
func (d *Device) Write(p []byte) (int, error) {
	orig := len(p)

	for len(p) > 0 && d.pos < d.Size {
		// Bytes remaining in the current page.
		nip := d.PageSize - d.pos%d.PageSize
		if nip > uint(len(p)) {
			nip = uint(len(p))
		}
		if rem := d.Size - d.pos; nip > rem {
			nip = rem
		}

		d.bus.BeginTransmission(d.busAddr(d.pos))
		d.bus.Write(uint8(d.pos % blockSize))
		d.bus.WriteBytes(p[:nip])
		if err := d.bus.EndTransmission(true).Error(); err != nil {
			return orig - len(p), err
		}

		// Wait out the device's internal write cycle.
		if d.WriteDelay > 0 {
			time.Sleep(d.WriteDelay)
		}

		d.pos += nip
		p = p[nip:]
	}

	if len(p) > 0 {
		return orig - len(p), io.EOF
	}
	return orig, nil
}

// Seek sets the position for the next Read or Write. Positions outside
// the array are rejected.
func (d *Device) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(d.pos) + offset
	case io.SeekEnd:
		pos = int64(d.Size) + offset
	default:
		return int64(d.pos), pkg.ErrInvalidParameter
	}

	if pos < 0 || pos > int64(d.Size) {
		return int64(d.pos), pkg.ErrInvalidParameter
	}

	d.pos = uint(pos)
	return pos, nil
}

// Compile-time interface check
var _ io.ReadWriteSeeker = (*Device)(nil)
