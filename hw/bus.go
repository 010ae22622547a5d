package hw

// Bus is 32-bit register access to the device address space. On target it is
// backed by volatile MMIO; on a host, by a MemBus recording the traffic.
type Bus interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
}

// BusWrite is one recorded register write.
type BusWrite struct {
	Addr  uint32
	Value uint32
}

// MemBus is a Bus over a sparse memory map. Every write is appended to
// Trace in order, so tests can assert on the exact register sequence a
// build session produces.
type MemBus struct {
	Mem   map[uint32]uint32
	Trace []BusWrite
}

var _ Bus = (*MemBus)(nil)

// NewMemBus creates an empty memory-backed bus.
func NewMemBus() (bus *MemBus) {
	bus = &MemBus{Mem: map[uint32]uint32{}}
	return
}

// Read32 returns the last value written to addr, or zero.
func (bus *MemBus) Read32(addr uint32) uint32 {
	return bus.Mem[addr]
}

// Write32 stores value at addr and records it in the trace.
func (bus *MemBus) Write32(addr uint32, value uint32) {
	bus.Mem[addr] = value
	bus.Trace = append(bus.Trace, BusWrite{Addr: addr, Value: value})
}
