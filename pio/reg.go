package pio

// Reg indexes the six per state machine registers, in the order they appear
// in the hardware register file (0x18 byte stride per state machine).
type Reg uint8

const (
	RegClkDiv    = Reg(0)
	RegExecCtrl  = Reg(1)
	RegShiftCtrl = Reg(2)
	RegAddr      = Reg(3) // read only: current instruction address
	RegInstr     = Reg(4) // write only: execute an instruction immediately
	RegPinCtrl   = Reg(5)

	NumRegs = 6
)

// ClkDiv packs a 16-bit integer and 8-bit fractional clock divisor.
func ClkDiv(whole uint16, frac uint8) uint32 {
	return uint32(whole)<<16 | uint32(frac)<<8
}

// ClkDivInt unpacks the integer divisor from a CLKDIV register value.
func ClkDivInt(reg uint32) uint16 {
	return uint16(reg >> 16)
}

// ClkDivFrac unpacks the fractional divisor from a CLKDIV register value.
func ClkDivFrac(reg uint32) uint8 {
	return uint8(reg >> 8)
}

// ExecCtrlWrapBottom packs a wrap bottom offset into EXECCTRL form.
func ExecCtrlWrapBottom(offset uint8) uint32 {
	return uint32(offset&0x1f) << 7
}

// ExecCtrlWrapTop packs a wrap top offset into EXECCTRL form.
func ExecCtrlWrapTop(offset uint8) uint32 {
	return uint32(offset&0x1f) << 12
}

// WrapBottomOf unpacks the wrap bottom offset from an EXECCTRL value.
func WrapBottomOf(reg uint32) uint8 {
	return uint8(reg>>7) & 0x1f
}

// WrapTopOf unpacks the wrap top offset from an EXECCTRL value.
func WrapTopOf(reg uint32) uint8 {
	return uint8(reg>>12) & 0x1f
}

// ExecCtrlJmpPin selects the pin tested by jmp pin.
func ExecCtrlJmpPin(pin uint8) uint32 {
	return uint32(pin&0x1f) << 24
}

// EXECCTRL STATUS_SEL: the comparison driving the mov status source.
const (
	ExecCtrlStatusTxLevel = uint32(0x0) << 5
	ExecCtrlStatusRxLevel = uint32(0x1) << 5
	ExecCtrlStatusIrq     = uint32(0x2) << 5
)

// ExecCtrlStatusN packs the STATUS_N comparison level.
func ExecCtrlStatusN(n uint8) uint32 {
	return uint32(n & 0x1f)
}

// STATUS_N values for the IRQ status source.
const (
	StatusNIrq     = uint8(0x00)
	StatusNIrqPrev = uint8(0x08)
	StatusNIrqNext = uint8(0x10)
)

// SHIFTCTRL flags.
const (
	ShiftCtrlAutopush      = uint32(1) << 16
	ShiftCtrlAutopull      = uint32(1) << 17
	ShiftCtrlInShiftRight  = uint32(1) << 18
	ShiftCtrlOutShiftRight = uint32(1) << 19
)

// ShiftCtrlInCount packs the IN pin count.
func ShiftCtrlInCount(count uint8) uint32 {
	return uint32(count & 0x1f)
}

// ShiftCtrlPushThresh packs the autopush threshold.
func ShiftCtrlPushThresh(bits uint8) uint32 {
	return uint32(bits&0x1f) << 20
}

// ShiftCtrlPullThresh packs the autopull threshold.
func ShiftCtrlPullThresh(bits uint8) uint32 {
	return uint32(bits&0x1f) << 25
}

// PINCTRL base/count fields for the out, set, side-set and in pin groups.

func PinCtrlOutBase(pin uint8) uint32 {
	return uint32(pin & 0x1f)
}

func PinCtrlSetBase(pin uint8) uint32 {
	return uint32(pin&0x1f) << 5
}

func PinCtrlSideSetBase(pin uint8) uint32 {
	return uint32(pin&0x1f) << 10
}

func PinCtrlInBase(pin uint8) uint32 {
	return uint32(pin&0x1f) << 15
}

func PinCtrlOutCount(count uint8) uint32 {
	return uint32(count&0x3f) << 20
}

func PinCtrlSetCount(count uint8) uint32 {
	return uint32(count&0x7) << 26
}

func PinCtrlSideSetCount(count uint8) uint32 {
	return uint32(count&0x7) << 29
}
