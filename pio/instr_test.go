package pio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		instr Instruction
		word  uint16
	}){
		{"jmp", Jmp(JmpAlways, 5), 0x0005},
		{"jmp_xdec", Jmp(JmpXDec, 3), 0x0043},
		{"jmp_osre", Jmp(JmpOsrNotEmpty, 31), 0x00FF},
		{"wait_pin", Wait(true, WaitSrcPin, 0), 0x20A0},
		{"wait_gpio", Wait(false, WaitSrcGpio, 3), 0x2003},
		{"wait_irq_prev", WaitIrq(true, IrqIndexPrev, 3), 0x20CB},
		{"wait_irq_rel", WaitIrq(true, IrqIndexRel, 2), 0x20D2},
		{"in_pins", In(InPins, 8), 0x4008},
		{"in_osr", In(InOsr, 32 & 0x1f), 0x40E0},
		{"out_pins", Out(OutPins, 8), 0x6008},
		{"out_pc", Out(OutPC, 5), 0x60A5},
		{"push", Push(false, true), 0x8020},
		{"push_iffull", Push(true, true), 0x8060},
		{"pull", Pull(false, true), 0x80A0},
		{"pull_ifempty_noblock", Pull(true, false), 0x80C0},
		{"mov_rxfifo_y", MovISRToRxFifo(false, 0), 0x8010},
		{"mov_rxfifo_2", MovISRToRxFifo(true, 2), 0x801A},
		{"mov_txfifo_1", MovOSRToTxFifo(true, 1), 0x8099},
		{"mov_x_osr", Mov(MovDestX, MovOpCopy, MovSrcOsr), 0xA027},
		{"mov_pindirs_not_null", Mov(MovDestPindirs, MovOpInvert, MovSrcNull), 0xA06B},
		{"mov_isr_rev_pins", Mov(MovDestIsr, MovOpReverse, MovSrcPins), 0xA0D0},
		{"nop", Nop(), 0xA042},
		{"irq_set", Irq(false, false, IrqIndexDirect, 1), 0xC001},
		{"irq_wait", Irq(false, true, IrqIndexDirect, 1), 0xC021},
		{"irq_clear_rel", Irq(true, false, IrqIndexRel, 1), 0xC051},
		{"irq_prev", Irq(false, false, IrqIndexPrev, 2), 0xC00A},
		{"set_pins", Set(SetPins, 1), 0xE001},
		{"set_pindirs", Set(SetPindirs, 1), 0xE081},
		{"set_x_delay", Set(SetX, 3).WithDelay(4), 0xE423},
		{"set_pins_delay31", Set(SetPins, 1).WithDelay(31), 0xFF01},
	}

	for _, entry := range table {
		assert.Equal(entry.word, uint16(entry.instr), entry.name)
	}
}

func TestFields(t *testing.T) {
	assert := assert.New(t)

	in := Set(SetPins, 1).WithDelay(31)
	assert.Equal(ClassSet, in.Class())
	assert.Equal(uint8(31), in.Delay())

	assert.Equal(ClassJmp, Jmp(JmpAlways, 0).Class())
	assert.Equal(ClassPushPull, Push(false, true).Class())
	assert.Equal(ClassPushPull, MovOSRToTxFifo(false, 0).Class())
	assert.Equal(ClassMov, Nop().Class())
	assert.Equal(uint8(0), Nop().Delay())
}

func TestOperandMasking(t *testing.T) {
	assert := assert.New(t)

	// Operands wider than their field are truncated, never spilled into
	// neighboring bits.
	assert.Equal(Jmp(JmpAlways, 1), Jmp(JmpAlways, 33))
	assert.Equal(Set(SetPins, 0), Set(SetPins, 32))
	assert.Equal(Nop(), Nop().WithDelay(32))
	assert.Equal(WaitIrq(true, IrqIndexDirect, 0), WaitIrq(true, IrqIndexDirect, 8))
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		instr Instruction
		text  string
	}){
		{"jmp", Jmp(JmpAlways, 5), "jmp 5"},
		{"jmp_cond", Jmp(JmpXDec, 3), "jmp x--, 3"},
		{"jmp_osre", Jmp(JmpOsrNotEmpty, 2), "jmp !osre, 2"},
		{"wait_pin", Wait(true, WaitSrcPin, 0), "wait 1 pin 0"},
		{"wait_gpio", Wait(false, WaitSrcGpio, 3), "wait 0 gpio 3"},
		{"wait_jmppin", Wait(true, WaitSrcJmpPin, 1), "wait 1 jmppin 1"},
		{"wait_irq", WaitIrq(true, IrqIndexDirect, 3), "wait 1 irq 3"},
		{"wait_irq_prev", WaitIrq(true, IrqIndexPrev, 3), "wait 1 irq prev 3"},
		{"wait_irq_next", WaitIrq(false, IrqIndexNext, 1), "wait 0 irq next 1"},
		{"in", In(InPins, 8), "in pins, 8"},
		{"in_reserved", Instruction(0x4088), "in reserved, 8"},
		{"out", Out(OutExec, 16), "out exec, 16"},
		{"push", Push(false, true), "push block"},
		{"push_iffull", Push(true, false), "push iffull noblock"},
		{"pull", Pull(false, true), "pull block"},
		{"pull_ifempty", Pull(true, true), "pull ifempty block"},
		{"mov_rxfifo_y", MovISRToRxFifo(false, 0), "mov rxfifo[y], isr"},
		{"mov_rxfifo_2", MovISRToRxFifo(true, 2), "mov rxfifo[2], isr"},
		{"mov_txfifo_1", MovOSRToTxFifo(true, 1), "mov txfifo[1], osr"},
		{"mov", Mov(MovDestX, MovOpCopy, MovSrcOsr), "mov x, osr"},
		{"mov_invert", Mov(MovDestPindirs, MovOpInvert, MovSrcNull), "mov pindirs, ~null"},
		{"mov_reverse", Mov(MovDestIsr, MovOpReverse, MovSrcPins), "mov isr, ::pins"},
		{"mov_reserved_op", Instruction(0xA05A), "mov y, reservedy"},
		{"nop", Nop(), "nop"},
		{"nop_delay", Nop().WithDelay(4), "nop [4]"},
		{"irq_set", Irq(false, false, IrqIndexDirect, 1), "irq 1"},
		{"irq_wait", Irq(false, true, IrqIndexDirect, 1), "irq wait 1"},
		{"irq_clear", Irq(true, false, IrqIndexDirect, 5), "irq clear 5"},
		{"irq_rel", Irq(false, false, IrqIndexRel, 1), "irq 1 rel"},
		{"irq_prev", Irq(false, false, IrqIndexPrev, 2), "irq prev 2"},
		{"irq_next_clear", Irq(true, false, IrqIndexNext, 0), "irq next clear 0"},
		{"set", Set(SetPins, 1), "set pins, 1"},
		{"set_reserved", Instruction(0xE061), "set reserved, 1"},
		{"set_delay", Set(SetPins, 0).WithDelay(31), "set pins, 0 [31]"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.instr.String(), entry.name)
	}
}

func TestDisassembleOrigin(t *testing.T) {
	assert := assert.New(t)

	// Jump targets render relative to the program origin, going negative
	// for targets below it.
	assert.Equal("jmp 1", Jmp(JmpAlways, 5).Disassemble(4))
	assert.Equal("jmp -1", Jmp(JmpAlways, 5).Disassemble(6))
	assert.Equal("jmp x--, 0", Jmp(JmpXDec, 8).Disassemble(8))
}

func TestDecodeTotal(t *testing.T) {
	assert := assert.New(t)

	// Every 16-bit word decodes to some text.
	for word := 0; word <= 0xffff; word++ {
		text := Instruction(word).String()
		assert.NotEmpty(text, "0x%04X", word)
	}
}
