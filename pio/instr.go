package pio

// Instruction is a single 16-bit PIO instruction word.
//
// Bits 15:13 select the instruction class, bits 12:8 carry the 5-bit
// delay/side-set count, and the remaining bits are class specific. Operands
// passed to the encoder functions are masked to their field width, matching
// the truncation the hardware registers perform.
type Instruction uint16

// Class is the instruction class held in the top 3 bits of the word.
type Class uint8

const (
	ClassJmp      = Class(0b000)
	ClassWait     = Class(0b001)
	ClassIn       = Class(0b010)
	ClassOut      = Class(0b011)
	ClassPushPull = Class(0b100) // PUSH/PULL, or FIFO-indexed MOV when bit 4 is set
	ClassMov      = Class(0b101)
	ClassIrq      = Class(0b110)
	ClassSet      = Class(0b111)
)

// Class returns the instruction class.
func (in Instruction) Class() Class {
	return Class(in >> 13)
}

// Delay returns the 5-bit delay/side-set count.
func (in Instruction) Delay() uint8 {
	return uint8(in>>8) & 0x1f
}

// WithDelay returns the instruction with a 0-31 cycle delay applied.
func (in Instruction) WithDelay(cycles uint8) Instruction {
	return in | Instruction(cycles&0x1f)<<8
}

// JmpCond is a JMP condition code.
type JmpCond uint8

const (
	JmpAlways      = JmpCond(0b000)
	JmpXZero       = JmpCond(0b001) // !x
	JmpXDec        = JmpCond(0b010) // x--
	JmpYZero       = JmpCond(0b011) // !y
	JmpYDec        = JmpCond(0b100) // y--
	JmpXNotY       = JmpCond(0b101) // x!=y
	JmpPin         = JmpCond(0b110) // pin
	JmpOsrNotEmpty = JmpCond(0b111) // !osre
)

// WaitSrc is a WAIT event source.
type WaitSrc uint8

const (
	WaitSrcGpio   = WaitSrc(0b00)
	WaitSrcPin    = WaitSrc(0b01)
	WaitSrcIrq    = WaitSrc(0b10)
	WaitSrcJmpPin = WaitSrc(0b11)
)

// InSrc is an IN bit source.
type InSrc uint8

const (
	InPins = InSrc(0b000)
	InX    = InSrc(0b001)
	InY    = InSrc(0b010)
	InNull = InSrc(0b011)
	InIsr  = InSrc(0b110)
	InOsr  = InSrc(0b111)
)

// OutDest is an OUT bit destination.
type OutDest uint8

const (
	OutPins    = OutDest(0b000)
	OutX       = OutDest(0b001)
	OutY       = OutDest(0b010)
	OutNull    = OutDest(0b011)
	OutPindirs = OutDest(0b100)
	OutPC      = OutDest(0b101)
	OutIsr     = OutDest(0b110)
	OutExec    = OutDest(0b111)
)

// MovDest is a MOV destination.
type MovDest uint8

const (
	MovDestPins    = MovDest(0b000)
	MovDestX       = MovDest(0b001)
	MovDestY       = MovDest(0b010)
	MovDestPindirs = MovDest(0b011)
	MovDestExec    = MovDest(0b100)
	MovDestPC      = MovDest(0b101)
	MovDestIsr     = MovDest(0b110)
	MovDestOsr     = MovDest(0b111)
)

// MovOp is a MOV source operation.
type MovOp uint8

const (
	MovOpCopy    = MovOp(0b00)
	MovOpInvert  = MovOp(0b01) // ~
	MovOpReverse = MovOp(0b10) // ::
)

// MovSrc is a MOV source.
type MovSrc uint8

const (
	MovSrcPins   = MovSrc(0b000)
	MovSrcX      = MovSrc(0b001)
	MovSrcY      = MovSrc(0b010)
	MovSrcNull   = MovSrc(0b011)
	MovSrcStatus = MovSrc(0b101)
	MovSrcIsr    = MovSrc(0b110)
	MovSrcOsr    = MovSrc(0b111)
)

// SetDest is a SET destination.
type SetDest uint8

const (
	SetPins    = SetDest(0b000)
	SetX       = SetDest(0b001)
	SetY       = SetDest(0b010)
	SetPindirs = SetDest(0b100)
)

// IrqIndexMode selects how an IRQ or WAIT IRQ index is interpreted.
type IrqIndexMode uint8

const (
	IrqIndexDirect = IrqIndexMode(0b00)
	IrqIndexPrev   = IrqIndexMode(0b01) // previous block's IRQs
	IrqIndexRel    = IrqIndexMode(0b10) // index is relative to the state machine
	IrqIndexNext   = IrqIndexMode(0b11) // next block's IRQs
)

func b2i(flag bool) Instruction {
	if flag {
		return 1
	}
	return 0
}

func class(cl Class) Instruction {
	return Instruction(cl) << 13
}

// Jmp encodes a jump to the absolute block offset addr.
func Jmp(cond JmpCond, addr uint8) Instruction {
	return class(ClassJmp) | Instruction(cond&0x7)<<5 | Instruction(addr&0x1f)
}

// Wait encodes a wait on a GPIO, pin, or jmp-pin event.
// For IRQ events use WaitIrq.
func Wait(polarity bool, src WaitSrc, index uint8) Instruction {
	return class(ClassWait) | b2i(polarity)<<7 | Instruction(src&0x3)<<5 | Instruction(index&0x1f)
}

// WaitIrq encodes a wait on one of the peripheral IRQ flags.
func WaitIrq(polarity bool, mode IrqIndexMode, index uint8) Instruction {
	return class(ClassWait) | b2i(polarity)<<7 | Instruction(WaitSrcIrq)<<5 |
		Instruction(mode&0x3)<<3 | Instruction(index&0x7)
}

// In encodes a shift of count bits from src into the ISR.
func In(src InSrc, count uint8) Instruction {
	return class(ClassIn) | Instruction(src&0x7)<<5 | Instruction(count&0x1f)
}

// Out encodes a shift of count bits from the OSR to dest.
func Out(dest OutDest, count uint8) Instruction {
	return class(ClassOut) | Instruction(dest&0x7)<<5 | Instruction(count&0x1f)
}

// Push encodes a push of the ISR into the RX FIFO.
func Push(ifFull bool, block bool) Instruction {
	return class(ClassPushPull) | b2i(ifFull)<<6 | b2i(block)<<5
}

// Pull encodes a pull from the TX FIFO into the OSR.
func Pull(ifEmpty bool, block bool) Instruction {
	return class(ClassPushPull) | 1<<7 | b2i(ifEmpty)<<6 | b2i(block)<<5
}

// MovISRToRxFifo encodes a write of the ISR into one RX FIFO slot, indexed
// by the instruction when byIndex is set, otherwise by the Y register.
func MovISRToRxFifo(byIndex bool, index uint8) Instruction {
	return class(ClassPushPull) | 1<<4 | b2i(byIndex)<<3 | Instruction(index&0x3)
}

// MovOSRToTxFifo encodes a write of the OSR into one TX FIFO slot, indexed
// by the instruction when byIndex is set, otherwise by the Y register.
func MovOSRToTxFifo(byIndex bool, index uint8) Instruction {
	return class(ClassPushPull) | 1<<7 | 1<<4 | b2i(byIndex)<<3 | Instruction(index&0x3)
}

// Mov encodes a register-to-register move, optionally inverting or
// bit-reversing the source.
func Mov(dest MovDest, op MovOp, src MovSrc) Instruction {
	return class(ClassMov) | Instruction(dest&0x7)<<5 | Instruction(op&0x3)<<3 | Instruction(src&0x7)
}

// Nop encodes the canonical no-op, mov y, y.
func Nop() Instruction {
	return Mov(MovDestY, MovOpCopy, MovSrcY)
}

// Irq encodes an IRQ flag operation: set by default, clear when clear is
// set, or set-and-wait-for-clear when wait is set.
func Irq(clear bool, wait bool, mode IrqIndexMode, index uint8) Instruction {
	return class(ClassIrq) | b2i(clear)<<6 | b2i(wait)<<5 |
		Instruction(mode&0x3)<<3 | Instruction(index&0x7)
}

// Set encodes an immediate write of a 0-31 value to dest.
func Set(dest SetDest, value uint8) Instruction {
	return class(ClassSet) | Instruction(dest&0x7)<<5 | Instruction(value&0x1f)
}
