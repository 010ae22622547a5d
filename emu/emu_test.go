package emu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/apio/pio"
)

func TestFifo(t *testing.T) {
	assert := assert.New(t)

	fifo := &Fifo{}

	_, err := fifo.Pop()
	assert.ErrorIs(err, ErrFifoEmpty)

	for n := range pio.FifoDepth {
		assert.NoError(fifo.Push(uint32(n)), n)
	}
	assert.Equal(pio.FifoDepth, fifo.Len())
	assert.ErrorIs(fifo.Push(99), ErrFifoFull)

	assert.Equal([]uint32{0, 1, 2, 3}, fifo.Values())

	for n := range pio.FifoDepth {
		value, err := fifo.Pop()
		assert.NoError(err)
		assert.Equal(uint32(n), value)
	}
	assert.Equal(0, fifo.Len())
	_, err = fifo.Pop()
	assert.ErrorIs(err, ErrFifoEmpty)
}

func TestPioRegs(t *testing.T) {
	assert := assert.New(t)

	p := NewPio()

	p.WriteReg(1, 2, pio.RegClkDiv, pio.ClkDiv(100, 0))
	assert.Equal(pio.ClkDiv(100, 0), p.ReadReg(1, 2, pio.RegClkDiv))

	// Other state machines and blocks are untouched.
	assert.Equal(uint32(0), p.ReadReg(1, 1, pio.RegClkDiv))
	assert.Equal(uint32(0), p.ReadReg(0, 2, pio.RegClkDiv))
}

func TestPioProgram(t *testing.T) {
	assert := assert.New(t)

	p := NewPio()

	program := []pio.Instruction{
		pio.Set(pio.SetPindirs, 1),
		pio.Set(pio.SetPins, 1).WithDelay(31),
		pio.Set(pio.SetPins, 0).WithDelay(31),
	}
	p.LoadProgram(0, program)

	assert.Equal(uint8(3), p.Block[0].MaxOffset)
	assert.Equal(program, p.Block[0].Instr[:3])
	assert.Equal(pio.Instruction(0), p.Block[0].Instr[3])

	p.Enable(0, 0b0101)
	assert.Equal(uint8(0b0101), p.Block[0].Enabled)
}

func TestPioExecBacklog(t *testing.T) {
	assert := assert.New(t)

	p := NewPio()

	for range MaxExecBacklog {
		assert.NoError(p.Exec(0, 0, pio.Nop()))
	}
	assert.ErrorIs(p.Exec(0, 0, pio.Nop()), ErrExecBacklog)

	// Other state machines have their own backlog.
	assert.NoError(p.Exec(0, 1, pio.Nop()))
	assert.Len(p.Block[0].StateMachine[0].Pre, MaxExecBacklog)
}

func TestPioFifos(t *testing.T) {
	assert := assert.New(t)

	p := NewPio()

	for n := range pio.FifoDepth {
		assert.NoError(p.PushTx(2, 3, uint32(0x100+n)))
	}
	assert.ErrorIs(p.PushTx(2, 3, 0), ErrFifoFull)

	value, err := p.PopTx(2, 3)
	assert.NoError(err)
	assert.Equal(uint32(0x100), value)

	_, err = p.PopRx(2, 3)
	assert.ErrorIs(err, ErrFifoEmpty)

	assert.NoError(p.PushRx(2, 3, 0xdeadbeef))
	value, err = p.PopRx(2, 3)
	assert.NoError(err)
	assert.Equal(uint32(0xdeadbeef), value)
}

func TestPioClearIrq(t *testing.T) {
	assert := assert.New(t)

	p := NewPio()
	p.Block[1].Irq = 0xf

	p.ClearIrq(1)
	assert.Equal(uint32(0), p.Block[1].Irq)
	assert.Equal(uint32(0), p.Block[0].Irq)
}
