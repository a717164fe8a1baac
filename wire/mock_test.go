package wire

import (
	"fmt"

	"github.com/ardnew/softwire/wire/hal"
)

// mockHAL implements hal.BusHAL for testing. Every operation is appended
// to calls as a formatted string so tests can assert exact sequencing.
// Scripted result slices are consumed one entry per call and fall back to
// a permissive default (acknowledge, own the bus) when exhausted.
type mockHAL struct {
	calls []string

	ackAddress   bool   // StartTransaction result
	sendResults  []bool // per-SendByte results; exhausted = true
	readData     []byte // per-ReadByte results; exhausted = 0
	ownerResults []bool // per-IsBusOwner results; exhausted = true

	// timedOut latches true after the configured number of byte
	// operations, mimicking the hardware watchdog flag that holds until
	// the peripheral is reinitialized.
	timedOut          bool
	timeoutAfterSends int
	timeoutAfterReads int
	sends             int
	cmdReads          int

	// Slave condition flags
	isSlave    bool
	addrMatch  bool
	stopDet    bool
	restartDet bool
	masterRead bool
	dataReady  bool

	periphAck    bool
	sentAsPeriph []byte

	inits      []uint32
	slaveInits []uint8
	enables    int
	disables   int
}

func newMockHAL() *mockHAL {
	return &mockHAL{
		ackAddress: true,
		periphAck:  true,
	}
}

func (m *mockHAL) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockHAL) InitController(clockHz uint32) {
	m.inits = append(m.inits, clockHz)
	m.timedOut = false
	m.record("init-controller:%d", clockHz)
}

func (m *mockHAL) InitPeripheral(addr uint8, generalCall bool) {
	m.slaveInits = append(m.slaveInits, addr)
	m.isSlave = true
	m.record("init-peripheral:%#02x:%t", addr, generalCall)
}

func (m *mockHAL) Enable() {
	m.enables++
	m.record("enable")
}

func (m *mockHAL) Disable() {
	m.disables++
	m.record("disable")
}

func (m *mockHAL) StartTransaction(addr uint8, dir hal.Direction) bool {
	m.record("start:%#02x:%s", addr, dir)
	return m.ackAddress
}

func (m *mockHAL) IsBusOwner() bool {
	if len(m.ownerResults) == 0 {
		return true
	}
	res := m.ownerResults[0]
	m.ownerResults = m.ownerResults[1:]
	return res
}

func (m *mockHAL) DidTimeout() bool {
	return m.timedOut
}

func (m *mockHAL) SendByte(b byte) bool {
	m.sends++
	if m.timeoutAfterSends > 0 && m.sends >= m.timeoutAfterSends {
		m.timedOut = true
	}
	res := true
	if len(m.sendResults) > 0 {
		res = m.sendResults[0]
		m.sendResults = m.sendResults[1:]
	}
	m.record("send:%#02x:%t", b, res)
	return res
}

func (m *mockHAL) ReadByte() byte {
	var b byte
	if len(m.readData) > 0 {
		b = m.readData[0]
		m.readData = m.readData[1:]
	}
	m.record("read:%#02x", b)
	return b
}

func (m *mockHAL) SendByteAsPeripheral(b byte) bool {
	m.sentAsPeriph = append(m.sentAsPeriph, b)
	m.record("send-peripheral:%#02x:%t", b, m.periphAck)
	return m.periphAck
}

func (m *mockHAL) PrepareAck() {
	m.record("ack")
}

func (m *mockHAL) PrepareNack() {
	m.record("nack")
}

func (m *mockHAL) IssueCommand(cmd hal.Command) {
	if cmd == hal.CmdRead {
		m.cmdReads++
		if m.timeoutAfterReads > 0 && m.cmdReads >= m.timeoutAfterReads {
			m.timedOut = true
		}
	}
	m.record("cmd:%s", cmd)
}

func (m *mockHAL) IsPeripheral() bool              { return m.isSlave }
func (m *mockHAL) IsAddressMatch() bool            { return m.addrMatch }
func (m *mockHAL) IsStopDetected() bool            { return m.stopDet }
func (m *mockHAL) IsRestartDetected() bool         { return m.restartDet }
func (m *mockHAL) IsControllerReadOperation() bool { return m.masterRead }
func (m *mockHAL) IsDataReady() bool               { return m.dataReady }

// countCalls returns how many recorded calls start with the given prefix.
func (m *mockHAL) countCalls(prefix string) int {
	n := 0
	for _, c := range m.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// Compile-time interface check
var _ hal.BusHAL = (*mockHAL)(nil)
