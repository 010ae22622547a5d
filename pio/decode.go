package pio

import (
	"fmt"
	"strconv"
)

// Operand name tables. Unused encodings render as "reserved" so that decode
// is always total; it is a diagnostic aid, not a validator.
var (
	jmpConds    = [8]string{"", "!x", "x--", "!y", "y--", "x!=y", "pin", "!osre"}
	waitSources = [4]string{"gpio", "pin", "irq", "jmppin"}
	inSources   = [8]string{"pins", "x", "y", "null", "reserved", "reserved", "isr", "osr"}
	outDests    = [8]string{"pins", "x", "y", "null", "pindirs", "pc", "isr", "exec"}
	movDests    = [8]string{"pins", "x", "y", "pindirs", "exec", "pc", "isr", "osr"}
	movOps      = [4]string{"", "~", "::", "reserved"}
	movSources  = [8]string{"pins", "x", "y", "null", "reserved", "status", "isr", "osr"}
	setDests    = [8]string{"pins", "x", "y", "reserved", "pindirs", "reserved", "reserved", "reserved"}
)

func delaySuffix(delay uint8) string {
	if delay == 0 {
		return ""
	}
	return fmt.Sprintf(" [%d]", delay)
}

// Disassemble decodes the instruction into a pioasm-style mnemonic.
//
// Jump targets are rendered relative to origin, the block offset of the
// first instruction of the program being listed; pass 0 for absolute
// block-wide addresses. Decoding never fails.
func (in Instruction) Disassemble(origin uint8) (text string) {
	delay := delaySuffix(in.Delay())

	switch in.Class() {
	case ClassJmp:
		cond := jmpConds[(in>>5)&0x7]
		target := int(in&0x1f) - int(origin)
		if cond == "" {
			text = fmt.Sprintf("jmp %d%s", target, delay)
		} else {
			text = fmt.Sprintf("jmp %s, %d%s", cond, target, delay)
		}

	case ClassWait:
		polarity := (in >> 7) & 0x1
		src := (in >> 5) & 0x3
		text = fmt.Sprintf("wait %d %s", polarity, waitSources[src])
		var index Instruction
		if WaitSrc(src) == WaitSrcIrq {
			index = in & 0x7
			switch IrqIndexMode((in >> 3) & 0x3) {
			case IrqIndexPrev:
				text += " prev"
			case IrqIndexNext:
				text += " next"
			}
		} else {
			index = in & 0x1f
		}
		text += fmt.Sprintf(" %d%s", index, delay)

	case ClassIn:
		text = fmt.Sprintf("in %s, %d%s", inSources[(in>>5)&0x7], in&0x1f, delay)

	case ClassOut:
		text = fmt.Sprintf("out %s, %d%s", outDests[(in>>5)&0x7], in&0x1f, delay)

	case ClassPushPull:
		if (in>>4)&0x1 == 0 {
			// PUSH or PULL, split on bit 7.
			name, flag := "push", " iffull "
			if (in>>7)&0x1 != 0 {
				name, flag = "pull", " ifempty "
			}
			sep := " "
			if (in>>6)&0x1 != 0 {
				sep = flag
			}
			blocking := "noblock"
			if (in>>5)&0x1 != 0 {
				blocking = "block"
			}
			text = name + sep + blocking + delay
		} else {
			// FIFO-indexed MOV.
			index := "y"
			if (in>>3)&0x1 != 0 {
				index = strconv.Itoa(int(in & 0x3))
			}
			if (in>>7)&0x1 == 0 {
				text = fmt.Sprintf("mov rxfifo[%s], isr%s", index, delay)
			} else {
				text = fmt.Sprintf("mov txfifo[%s], osr%s", index, delay)
			}
		}

	case ClassMov:
		dest := (in >> 5) & 0x7
		op := (in >> 3) & 0x3
		src := in & 0x7
		if MovDest(dest) == MovDestY && MovOp(op) == MovOpCopy && MovSrc(src) == MovSrcY {
			text = "nop" + delay
		} else {
			text = fmt.Sprintf("mov %s, %s%s%s", movDests[dest], movOps[op], movSources[src], delay)
		}

	case ClassIrq:
		text = "irq "
		mode := IrqIndexMode((in >> 3) & 0x3)
		switch mode {
		case IrqIndexPrev:
			text += "prev "
		case IrqIndexNext:
			text += "next "
		}
		if (in>>6)&0x1 != 0 {
			text += "clear "
		} else if (in>>5)&0x1 != 0 {
			text += "wait "
		}
		text += strconv.Itoa(int(in & 0x7))
		if mode == IrqIndexRel {
			text += " rel"
		}
		text += delay

	case ClassSet:
		text = fmt.Sprintf("set %s, %d%s", setDests[(in>>5)&0x7], in&0x1f, delay)
	}

	return
}

// String returns the mnemonic with absolute jump targets.
func (in Instruction) String() string {
	return in.Disassemble(0)
}
