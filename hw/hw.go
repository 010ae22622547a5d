// Package hw drives the RP2350 PIO blocks through their memory mapped
// registers. The register traffic flows through a Bus, so the same backend
// runs against real MMIO on target or a MemBus on a host.
package hw

import (
	"log"

	"github.com/ezrec/apio/pio"
)

// DefaultPollLimit bounds the busy-wait loops on FSTAT and RESET_DONE when
// Backend.PollLimit is zero.
const DefaultPollLimit = 1 << 16

// Backend drives PIO registers over a Bus.
type Backend struct {
	Verbose bool

	// PollLimit bounds every busy-wait poll loop. Zero selects
	// DefaultPollLimit.
	PollLimit int

	bus Bus
}

var _ pio.Backend = (*Backend)(nil)

// NewBackend creates a register backend over the given bus.
func NewBackend(bus Bus) (be *Backend) {
	be = &Backend{bus: bus}
	return
}

// Bus returns the underlying register bus.
func (be *Backend) Bus() Bus {
	return be.bus
}

func (be *Backend) pollLimit() int {
	if be.PollLimit > 0 {
		return be.PollLimit
	}
	return DefaultPollLimit
}

// WriteReg writes a state machine register.
func (be *Backend) WriteReg(block, sm int, reg pio.Reg, value uint32) {
	if be.Verbose {
		log.Printf("hw: pio%d:%d reg %d = 0x%08X", block, sm, reg, value)
	}
	be.bus.Write32(SmRegAddr(block, sm, reg), value)
}

// ReadReg reads a state machine register.
func (be *Backend) ReadReg(block, sm int, reg pio.Reg) uint32 {
	return be.bus.Read32(SmRegAddr(block, sm, reg))
}

// LoadProgram writes a block's committed program into instruction memory.
func (be *Backend) LoadProgram(block int, program []pio.Instruction) {
	for offset, in := range program {
		be.bus.Write32(InstrMemAddr(block, offset), uint32(in))
	}
}

// Exec forces a state machine to execute an instruction immediately, by
// writing it to the INSTR register.
func (be *Backend) Exec(block, sm int, in pio.Instruction) (err error) {
	be.WriteReg(block, sm, pio.RegInstr, uint32(in))
	return
}

// Enable writes a block's state machine enable mask into CTRL.
func (be *Backend) Enable(block int, mask uint8) {
	be.bus.Write32(CtrlAddr(block), uint32(mask&0xf))
}

// ClearIrq clears all IRQ flags of a block. The IRQ register is
// write-one-to-clear.
func (be *Backend) ClearIrq(block int) {
	be.bus.Write32(IrqAddr(block), 0xFFFFFFFF)
}

// PushTx writes a word to a state machine's TX FIFO, polling FSTAT until
// the FIFO has room. ErrFifoFull indicates the transfer would block past
// the poll limit.
func (be *Backend) PushTx(block, sm int, value uint32) (err error) {
	full := uint32(1) << (FstatTxFullShift + sm)
	fstat := FstatAddr(block)

	limit := be.pollLimit()
	for be.bus.Read32(fstat)&full != 0 {
		limit--
		if limit <= 0 {
			err = ErrFifoFull
			return
		}
	}

	be.bus.Write32(TxfAddr(block, sm), value)

	return
}

// PopRx reads a word from a state machine's RX FIFO, polling FSTAT until a
// word arrives. ErrFifoEmpty indicates no word arrived within the poll
// limit.
func (be *Backend) PopRx(block, sm int) (value uint32, err error) {
	empty := uint32(1) << (FstatRxEmptyShift + sm)
	fstat := FstatAddr(block)

	limit := be.pollLimit()
	for be.bus.Read32(fstat)&empty != 0 {
		limit--
		if limit <= 0 {
			err = ErrFifoEmpty
			return
		}
	}

	value = be.bus.Read32(RxfAddr(block, sm))

	return
}
