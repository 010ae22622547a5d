package hw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/apio/pio"
)

func TestAddressMap(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		addr uint32
		want uint32
	}){
		{"pio0_ctrl", CtrlAddr(0), 0x50200000},
		{"pio1_ctrl", CtrlAddr(1), 0x50300000},
		{"pio2_ctrl", CtrlAddr(2), 0x50400000},
		{"pio0_fstat", FstatAddr(0), 0x50200004},
		{"pio0_irq", IrqAddr(0), 0x50200030},
		{"pio0_txf3", TxfAddr(0, 3), 0x5020001C},
		{"pio0_rxf1", RxfAddr(0, 1), 0x50200024},
		{"pio0_imem0", InstrMemAddr(0, 0), 0x50200048},
		{"pio2_imem31", InstrMemAddr(2, 31), 0x504000C4},
		{"pio0_sm0_clkdiv", SmRegAddr(0, 0, pio.RegClkDiv), 0x502000C8},
		{"pio0_sm0_execctrl", SmRegAddr(0, 0, pio.RegExecCtrl), 0x502000CC},
		{"pio0_sm1_clkdiv", SmRegAddr(0, 1, pio.RegClkDiv), 0x502000E0},
		{"pio1_sm2_pinctrl", SmRegAddr(1, 2, pio.RegPinCtrl), 0x5030010C},
		{"gpio25_ctrl", GpioCtrlAddr(25), 0x400280CC},
		{"gpio25_pad", PadAddr(25), 0x40038068},
	}

	for _, entry := range table {
		assert.Equal(entry.want, entry.addr, entry.name)
	}
}

func TestBackendRegs(t *testing.T) {
	assert := assert.New(t)

	bus := NewMemBus()
	be := NewBackend(bus)

	be.WriteReg(0, 0, pio.RegClkDiv, pio.ClkDiv(15000, 0))
	assert.Equal(pio.ClkDiv(15000, 0), bus.Mem[0x502000C8])
	assert.Equal(pio.ClkDiv(15000, 0), be.ReadReg(0, 0, pio.RegClkDiv))

	assert.Equal([]BusWrite{{Addr: 0x502000C8, Value: pio.ClkDiv(15000, 0)}}, bus.Trace)
}

func TestBackendProgram(t *testing.T) {
	assert := assert.New(t)

	bus := NewMemBus()
	be := NewBackend(bus)

	program := []pio.Instruction{
		pio.Set(pio.SetPindirs, 1),
		pio.Set(pio.SetPins, 1).WithDelay(31),
	}
	be.LoadProgram(1, program)

	assert.Equal(uint32(0xE081), bus.Mem[InstrMemAddr(1, 0)])
	assert.Equal(uint32(0xFF01), bus.Mem[InstrMemAddr(1, 1)])

	be.Enable(1, 0b0011)
	assert.Equal(uint32(3), bus.Mem[CtrlAddr(1)])

	be.ClearIrq(1)
	assert.Equal(uint32(0xFFFFFFFF), bus.Mem[IrqAddr(1)])
}

func TestBackendExec(t *testing.T) {
	assert := assert.New(t)

	bus := NewMemBus()
	be := NewBackend(bus)

	assert.NoError(be.Exec(0, 2, pio.Jmp(pio.JmpAlways, 4)))
	assert.Equal(uint32(0x0004), bus.Mem[SmRegAddr(0, 2, pio.RegInstr)])
}

func TestBackendFifos(t *testing.T) {
	assert := assert.New(t)

	bus := NewMemBus()
	be := NewBackend(bus)
	be.PollLimit = 4

	// FSTAT reads idle: push lands in TXF.
	assert.NoError(be.PushTx(0, 1, 0x12345678))
	assert.Equal(uint32(0x12345678), bus.Mem[TxfAddr(0, 1)])

	// TX FIFO stuck full: the push would block.
	bus.Mem[FstatAddr(0)] = 1 << (FstatTxFullShift + 1)
	assert.ErrorIs(be.PushTx(0, 1, 0), ErrFifoFull)

	// RX FIFO has data.
	bus.Mem[FstatAddr(0)] = 0
	bus.Mem[RxfAddr(0, 2)] = 0xcafef00d
	value, err := be.PopRx(0, 2)
	assert.NoError(err)
	assert.Equal(uint32(0xcafef00d), value)

	// RX FIFO stuck empty: the pop times out.
	bus.Mem[FstatAddr(0)] = 1 << (FstatRxEmptyShift + 2)
	_, err = be.PopRx(0, 2)
	assert.ErrorIs(err, ErrFifoEmpty)
}
