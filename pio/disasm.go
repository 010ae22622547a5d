package pio

import (
	"fmt"
	"log"
)

// Listing renders the active state machine's program and register summary
// as text lines: a header, the register values, and one line per
// instruction with .start/.wrap_target/.wrap pseudo-labels interleaved.
// Registers are read back through the backend; the builder state is not
// modified.
func (b *Builder) Listing(name string) (lines []string) {
	block, sm := b.block, b.sm
	d := b.desc[block][sm]

	clkdiv := b.backend.ReadReg(block, sm, RegClkDiv)
	execctrl := b.backend.ReadReg(block, sm, RegExecCtrl)
	shiftctrl := b.backend.ReadReg(block, sm, RegShiftCtrl)
	pinctrl := b.backend.ReadReg(block, sm, RegPinCtrl)

	wrapBottom := WrapBottomOf(execctrl)
	wrapTop := WrapTopOf(execctrl)

	lines = append(lines,
		fmt.Sprintf("PIO%d:%d %s (%d instructions)", block, sm, name, d.End-d.First+1),
		fmt.Sprintf("  CLKDIV: %d.%02d EXECCTRL: 0x%08X SHIFTCTRL: 0x%08X PINCTRL: 0x%08X",
			ClkDivInt(clkdiv), ClkDivFrac(clkdiv), execctrl, shiftctrl, pinctrl),
		fmt.Sprintf("  .program pio%d_sm%d", block, sm),
	)

	for at := d.First; at <= d.End; at++ {
		if at == d.Start {
			lines = append(lines, "  .start")
		}
		if at == wrapBottom {
			lines = append(lines, "  .wrap_target")
		}
		in := b.buffer[block][at]
		lines = append(lines, fmt.Sprintf("    %d: 0x%04X ; %s",
			at-d.First, uint16(in), in.Disassemble(d.First)))
		if at == wrapTop {
			lines = append(lines, "  .wrap")
		}
	}

	return
}

// LogStateMachine writes the Listing for the active state machine to the
// standard logger.
func (b *Builder) LogStateMachine(name string) {
	for _, line := range b.Listing(name) {
		log.Print(line)
	}
}
