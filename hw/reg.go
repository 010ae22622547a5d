package hw

import (
	"github.com/ezrec/apio/pio"
)

// RP2350 address map, per the datasheet.
const (
	Pio0Base      = uint32(0x50200000)
	Pio1Base      = uint32(0x50300000)
	Pio2Base      = uint32(0x50400000)
	ResetsBase    = uint32(0x40020000)
	IoBank0Base   = uint32(0x40028000)
	PadsBank0Base = uint32(0x40038000)
)

// Register offsets within a PIO block.
const (
	CtrlOffset     = uint32(0x00)
	FstatOffset    = uint32(0x04)
	FdebugOffset   = uint32(0x08)
	FlevelOffset   = uint32(0x0C)
	TxfOffset      = uint32(0x10)
	RxfOffset      = uint32(0x20)
	IrqOffset      = uint32(0x30)
	InstrMemOffset = uint32(0x48)
	SmRegOffset    = uint32(0xC8)
	SmRegSpacing   = uint32(0x18)
)

// FSTAT per state machine flag groups.
const (
	FstatRxFullShift  = 0
	FstatRxEmptyShift = 8
	FstatTxFullShift  = 16
	FstatTxEmptyShift = 24
)

// RESETS registers and peripheral bits.
const (
	ResetOffset     = uint32(0x00)
	ResetDoneOffset = uint32(0x08)

	ResetIoBank0   = uint32(1) << 6
	ResetJtag      = uint32(1) << 8
	ResetPadsBank0 = uint32(1) << 9
	ResetPio0      = uint32(1) << 11
	ResetPio1      = uint32(1) << 12
	ResetPio2      = uint32(1) << 13
)

// IO_BANK0 and PADS_BANK0 per pin registers.
const (
	GpioCtrlOffset  = uint32(0x004)
	GpioCtrlSpacing = uint32(0x008)
	GpioFuncPio0    = uint32(0x06)
	GpioFuncPio1    = uint32(0x07)
	GpioFuncPio2    = uint32(0x08)

	PadOffset    = uint32(0x004)
	PadSpacing   = uint32(0x004)
	PadIso       = uint32(1) << 8
	PadOutputDis = uint32(1) << 7
)

var blockBase = [pio.MaxBlocks]uint32{Pio0Base, Pio1Base, Pio2Base}

var blockReset = [pio.MaxBlocks]uint32{ResetPio0, ResetPio1, ResetPio2}

var blockGpioFunc = [pio.MaxBlocks]uint32{GpioFuncPio0, GpioFuncPio1, GpioFuncPio2}

// BlockBase returns the register base address of a PIO block.
func BlockBase(block int) uint32 {
	return blockBase[block]
}

// CtrlAddr returns the address of a block's CTRL register.
func CtrlAddr(block int) uint32 {
	return blockBase[block] + CtrlOffset
}

// FstatAddr returns the address of a block's FSTAT register.
func FstatAddr(block int) uint32 {
	return blockBase[block] + FstatOffset
}

// IrqAddr returns the address of a block's IRQ register.
func IrqAddr(block int) uint32 {
	return blockBase[block] + IrqOffset
}

// TxfAddr returns the address of a state machine's TX FIFO register.
func TxfAddr(block, sm int) uint32 {
	return blockBase[block] + TxfOffset + uint32(sm)*4
}

// RxfAddr returns the address of a state machine's RX FIFO register.
func RxfAddr(block, sm int) uint32 {
	return blockBase[block] + RxfOffset + uint32(sm)*4
}

// InstrMemAddr returns the address of one word of a block's instruction
// memory.
func InstrMemAddr(block, offset int) uint32 {
	return blockBase[block] + InstrMemOffset + uint32(offset)*4
}

// SmRegAddr returns the address of a state machine register.
func SmRegAddr(block, sm int, reg pio.Reg) uint32 {
	return blockBase[block] + SmRegOffset + uint32(sm)*SmRegSpacing + uint32(reg)*4
}

// GpioCtrlAddr returns the address of a pin's IO_BANK0 control register.
func GpioCtrlAddr(pin int) uint32 {
	return IoBank0Base + GpioCtrlOffset + uint32(pin)*GpioCtrlSpacing
}

// PadAddr returns the address of a pin's PADS_BANK0 register.
func PadAddr(pin int) uint32 {
	return PadsBank0Base + PadOffset + uint32(pin)*PadSpacing
}
