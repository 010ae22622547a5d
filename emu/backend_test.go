package emu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/apio/hw"
	"github.com/ezrec/apio/pio"
)

// build runs the same session against any backend.
func build(t *testing.T, backend pio.Backend) {
	assert := assert.New(t)

	b := pio.NewBuilder(backend)
	assert.NoError(b.SetBlock(0))
	assert.NoError(b.SetStateMachine(0))

	assert.NoError(b.Add(pio.Set(pio.SetPindirs, 1)))
	b.MarkWrapBottom()
	assert.NoError(b.Add(pio.Set(pio.SetPins, 1).WithDelay(31)))
	b.MarkWrapTop()
	assert.NoError(b.Add(pio.Set(pio.SetPins, 0).WithDelay(31)))

	b.SetClkDiv(15000, 0)
	b.SetExecCtrl(0)
	b.SetShiftCtrl(0)
	b.SetPinCtrl(pio.PinCtrlSetBase(0) | pio.PinCtrlSetCount(1))

	assert.NoError(b.EndBlock())
	assert.NoError(b.Enable(0, 1<<0))
}

// The emulated peripheral must shadow exactly what the register backend
// writes to hardware for the same session.
func TestBackendEquivalence(t *testing.T) {
	assert := assert.New(t)

	p := NewPio()
	build(t, p)

	bus := hw.NewMemBus()
	build(t, hw.NewBackend(bus))

	for reg := pio.Reg(0); reg < pio.NumRegs; reg++ {
		if reg == pio.RegAddr || reg == pio.RegInstr {
			continue
		}
		assert.Equal(bus.Mem[hw.SmRegAddr(0, 0, reg)], p.ReadReg(0, 0, reg), reg)
	}

	for offset := range int(p.Block[0].MaxOffset) {
		assert.Equal(bus.Mem[hw.InstrMemAddr(0, offset)],
			uint32(p.Block[0].Instr[offset]), offset)
	}

	assert.Equal(bus.Mem[hw.CtrlAddr(0)], uint32(p.Block[0].Enabled))
}
