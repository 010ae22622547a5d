package pio

// Backend is the target a Builder writes programs and configuration to.
//
// The two implementations, hardware register access and an in-memory
// emulation, must produce equivalent state for the same call sequence. A
// backend is chosen when the Builder is created and never mixed within a
// build session.
type Backend interface {
	// WriteReg writes one per state machine register.
	WriteReg(block, sm int, reg Reg, value uint32)
	// ReadReg reads one per state machine register.
	ReadReg(block, sm int, reg Reg) uint32
	// LoadProgram writes the assembled words into the block's shared
	// instruction memory, starting at offset 0.
	LoadProgram(block int, program []Instruction)
	// Exec requests immediate execution of an instruction on a state
	// machine, ahead of (or instead of) its loaded program.
	Exec(block, sm int, in Instruction) error
	// Enable starts the state machines selected by mask, one bit each.
	Enable(block int, mask uint8)
	// ClearIrq clears all IRQ flags of a block.
	ClearIrq(block int)
	// PushTx writes a word into a state machine's TX FIFO.
	PushTx(block, sm int, value uint32) error
	// PopRx reads a word from a state machine's RX FIFO.
	PopRx(block, sm int) (uint32, error)
}
