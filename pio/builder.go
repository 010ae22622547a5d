// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package pio

import (
	"log"
)

const (
	MaxBlocks        = 3  // PIO blocks per peripheral.
	MaxStateMachines = 4  // State machines per block.
	MaxInstructions  = 32 // Shared instruction memory words per block.
	FifoDepth        = 4  // TX/RX FIFO depth per state machine.
)

// Descriptor holds the block offsets of one state machine's program.
//
// First is where the program was assembled, Start where execution begins,
// WrapBottom/WrapTop the inclusive loop range, and End the last instruction.
// All five default to First when the state machine is selected.
type Descriptor struct {
	First      uint8
	Start      uint8
	WrapBottom uint8
	WrapTop    uint8
	End        uint8
}

// Builder assembles programs for the state machines of a PIO peripheral.
//
// A Builder is one build session: select a block, select a state machine,
// emit its instructions, configure its registers, repeat for the block's
// other state machines, then EndBlock to commit the shared instruction
// memory before moving to the next block. A Builder is not safe for
// concurrent use; create one per session.
type Builder struct {
	Verbose bool // Set to log each emitted instruction.

	backend Backend
	block   int
	sm      int
	cursor  [MaxBlocks]uint8
	buffer  [MaxBlocks][MaxInstructions]Instruction
	desc    [MaxBlocks][MaxStateMachines]Descriptor
	ended   [MaxBlocks]bool
}

// NewBuilder creates a build session targeting the given backend, with
// block 0 and state machine 0 selected.
func NewBuilder(backend Backend) (b *Builder) {
	b = &Builder{
		backend: backend,
	}

	return
}

// Backend returns the backend this session writes to.
func (b *Builder) Backend() Backend {
	return b.backend
}

// SetBlock selects the active PIO block. State machine descriptors of other
// blocks are untouched.
func (b *Builder) SetBlock(block int) (err error) {
	if block < 0 || block >= MaxBlocks {
		err = ErrBlockInvalid
		return
	}

	b.block = block

	return
}

// SetStateMachine selects the active state machine and captures the block's
// write cursor into all five of its program offsets. Call before emitting
// any instruction for the state machine.
func (b *Builder) SetStateMachine(sm int) (err error) {
	if sm < 0 || sm >= MaxStateMachines {
		err = ErrStateMachineInvalid
		return
	}

	b.sm = sm
	at := b.cursor[b.block]
	b.desc[b.block][sm] = Descriptor{
		First:      at,
		Start:      at,
		WrapBottom: at,
		WrapTop:    at,
		End:        at,
	}

	return
}

// Label returns the block offset of the next instruction to be emitted,
// for use as a JMP target.
func (b *Builder) Label() uint8 {
	return b.cursor[b.block]
}

// LabelAhead returns the block offset count instructions past the cursor,
// for forward jump targets known in advance. The builder performs no
// backpatching; the caller is responsible for emitting exactly count
// instructions before the target.
func (b *Builder) LabelAhead(count uint8) uint8 {
	return b.cursor[b.block] + count
}

// MarkStart records the next emitted instruction as the execution start.
func (b *Builder) MarkStart() {
	b.desc[b.block][b.sm].Start = b.cursor[b.block]
}

// MarkWrapBottom records the next emitted instruction as the wrap target.
func (b *Builder) MarkWrapBottom() {
	b.desc[b.block][b.sm].WrapBottom = b.cursor[b.block]
}

// MarkWrapTop records the next emitted instruction as the wrap point, and
// as the program end. Call MarkEnd afterward only if further instructions
// follow the wrap.
func (b *Builder) MarkWrapTop() {
	b.desc[b.block][b.sm].WrapTop = b.cursor[b.block]
	b.MarkEnd()
}

// MarkEnd records the next emitted instruction as the last of the program.
func (b *Builder) MarkEnd() {
	b.desc[b.block][b.sm].End = b.cursor[b.block]
}

// Add appends an instruction to the active block's program memory image.
func (b *Builder) Add(in Instruction) (err error) {
	if b.ended[b.block] {
		err = ErrBlockEnded
		return
	}

	at := b.cursor[b.block]
	if int(at) >= MaxInstructions {
		err = ErrProgramFull
		return
	}

	b.buffer[b.block][at] = in
	b.cursor[b.block] = at + 1

	if b.Verbose {
		log.Printf("pio%d:%d %2d: 0x%04X ; %v", b.block, b.sm, at, uint16(in), in)
	}

	return
}

// Descriptor returns the program offsets of one state machine.
func (b *Builder) Descriptor(block, sm int) Descriptor {
	return b.desc[block][sm]
}

// SetClkDiv sets the state machine clock divider to whole + frac/256.
func (b *Builder) SetClkDiv(whole uint16, frac uint8) {
	b.backend.WriteReg(b.block, b.sm, RegClkDiv, ClkDiv(whole, frac))
}

// SetExecCtrl sets the EXECCTRL register. The wrap bottom and top offsets
// are OR'd in from the program descriptor; do not encode them in value.
func (b *Builder) SetExecCtrl(value uint32) {
	d := b.desc[b.block][b.sm]
	value |= ExecCtrlWrapBottom(d.WrapBottom) | ExecCtrlWrapTop(d.WrapTop)
	b.backend.WriteReg(b.block, b.sm, RegExecCtrl, value)
}

// SetShiftCtrl sets the SHIFTCTRL register.
func (b *Builder) SetShiftCtrl(value uint32) {
	b.backend.WriteReg(b.block, b.sm, RegShiftCtrl, value)
}

// SetPinCtrl sets the PINCTRL register.
func (b *Builder) SetPinCtrl(value uint32) {
	b.backend.WriteReg(b.block, b.sm, RegPinCtrl, value)
}

// Exec executes an instruction immediately on the active state machine.
// Can be called before enabling, to set initial state.
func (b *Builder) Exec(in Instruction) error {
	return b.backend.Exec(b.block, b.sm, in)
}

// JmpToStart queues a jump to the program's start offset, so the state
// machine begins there once enabled.
func (b *Builder) JmpToStart() error {
	return b.Exec(Jmp(JmpAlways, b.desc[b.block][b.sm].Start))
}

// EndBlock writes the block's assembled instructions, offset 0 through the
// cursor, out to the backend. Call exactly once per block, after every
// state machine sharing the block has been built.
func (b *Builder) EndBlock() (err error) {
	if b.ended[b.block] {
		err = ErrBlockEnded
		return
	}

	b.backend.LoadProgram(b.block, b.buffer[b.block][:b.cursor[b.block]])
	b.ended[b.block] = true

	return
}

// Enable starts the state machines of a block selected by mask, one bit
// per state machine.
func (b *Builder) Enable(block int, mask uint8) (err error) {
	if block < 0 || block >= MaxBlocks {
		err = ErrBlockInvalid
		return
	}
	if mask == 0 || mask >= 1<<MaxStateMachines {
		err = ErrMaskInvalid
		return
	}

	b.backend.Enable(block, mask)

	return
}

// ClearAllIrqs clears the IRQ flags of every block.
func (b *Builder) ClearAllIrqs() {
	for block := range MaxBlocks {
		b.backend.ClearIrq(block)
	}
}
