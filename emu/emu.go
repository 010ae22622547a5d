// Package emu provides an in-memory emulation of the PIO peripheral's
// hardware-visible state, so build sessions can run and be inspected on a
// host without the device. It mirrors the state transitions of the hardware
// backend structure for structure; tests assert on the shadow contents as
// "what would have been written to hardware".
package emu

import (
	"log"
	"slices"

	"github.com/ezrec/apio/pio"
)

const (
	// MaxExecBacklog bounds the immediate-execute requests queued per
	// state machine before it is enabled.
	MaxExecBacklog = 16
)

// Fifo is a bounded queue standing in for a state machine's TX or RX FIFO.
// Pushing past pio.FifoDepth reports ErrFifoFull, the host-side signal for
// a transfer that would block on hardware.
type Fifo struct {
	slots []uint32
}

// Push appends a word to the FIFO.
func (fifo *Fifo) Push(value uint32) (err error) {
	if len(fifo.slots) >= pio.FifoDepth {
		err = ErrFifoFull
		return
	}

	fifo.slots = append(fifo.slots, value)

	return
}

// Pop removes and returns the oldest word in the FIFO.
func (fifo *Fifo) Pop() (value uint32, err error) {
	if len(fifo.slots) == 0 {
		err = ErrFifoEmpty
		return
	}

	value = fifo.slots[0]
	fifo.slots = fifo.slots[1:]

	return
}

// Len returns the number of queued words.
func (fifo *Fifo) Len() int {
	return len(fifo.slots)
}

// Values returns a copy of the queued words, oldest first.
func (fifo *Fifo) Values() []uint32 {
	return slices.Clone(fifo.slots)
}

// StateMachine shadows the per state machine hardware state.
type StateMachine struct {
	Regs [pio.NumRegs]uint32 // Register file, indexed by pio.Reg.
	Pre  []pio.Instruction   // Queued immediate-execute instructions.
	Tx   Fifo
	Rx   Fifo
}

// Block shadows one PIO block.
type Block struct {
	Irq          uint32
	StateMachine [pio.MaxStateMachines]StateMachine
	Instr        [pio.MaxInstructions]pio.Instruction
	MaxOffset    uint8 // Words committed by the block's EndBlock.
	Enabled      uint8 // State machine enable mask.
}

// Pio is the emulated peripheral: every hardware-visible structure of all
// blocks and state machines. Create a fresh one per build session.
type Pio struct {
	Verbose bool

	Block   [pio.MaxBlocks]Block
	Running bool // Peripheral brought out of reset.
}

var _ pio.Backend = (*Pio)(nil)

// NewPio creates an emulated peripheral in its power-on state.
func NewPio() (p *Pio) {
	p = &Pio{}
	return
}

// EnablePios brings the emulated peripheral out of reset.
func (p *Pio) EnablePios() {
	p.Running = true
}

// WriteReg writes a state machine register into the shadow register file.
func (p *Pio) WriteReg(block, sm int, reg pio.Reg, value uint32) {
	if p.Verbose {
		log.Printf("emu: pio%d:%d reg %d = 0x%08X", block, sm, reg, value)
	}
	p.Block[block].StateMachine[sm].Regs[reg] = value
}

// ReadReg reads a state machine register from the shadow register file.
func (p *Pio) ReadReg(block, sm int, reg pio.Reg) uint32 {
	return p.Block[block].StateMachine[sm].Regs[reg]
}

// LoadProgram records the block's committed instruction memory image.
func (p *Pio) LoadProgram(block int, program []pio.Instruction) {
	copy(p.Block[block].Instr[:], program)
	p.Block[block].MaxOffset = uint8(len(program))
}

// Exec queues an immediate-execute instruction on a state machine.
func (p *Pio) Exec(block, sm int, in pio.Instruction) (err error) {
	machine := &p.Block[block].StateMachine[sm]
	if len(machine.Pre) >= MaxExecBacklog {
		err = ErrExecBacklog
		return
	}

	machine.Pre = append(machine.Pre, in)

	return
}

// Enable records the block's state machine enable mask.
func (p *Pio) Enable(block int, mask uint8) {
	p.Block[block].Enabled = mask
}

// ClearIrq clears all IRQ flags of a block.
func (p *Pio) ClearIrq(block int) {
	p.Block[block].Irq = 0
}

// PushTx queues a word on a state machine's TX FIFO.
func (p *Pio) PushTx(block, sm int, value uint32) error {
	return p.Block[block].StateMachine[sm].Tx.Push(value)
}

// PopRx dequeues a word from a state machine's RX FIFO.
func (p *Pio) PopRx(block, sm int) (uint32, error) {
	return p.Block[block].StateMachine[sm].Rx.Pop()
}

// PushRx queues a word on a state machine's RX FIFO, taking the place of
// the state machine's own push instruction for host-side tests.
func (p *Pio) PushRx(block, sm int, value uint32) error {
	return p.Block[block].StateMachine[sm].Rx.Push(value)
}

// PopTx dequeues a word from a state machine's TX FIFO, taking the place
// of the state machine's own pull instruction for host-side tests.
func (p *Pio) PopTx(block, sm int) (uint32, error) {
	return p.Block[block].StateMachine[sm].Tx.Pop()
}
