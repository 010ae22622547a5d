// Package pio implements a runtime assembler for the RP2350 PIO blocks.
//
// A PIO peripheral contains three blocks, each with four state machines
// sharing one 32 word instruction memory. The Builder assembles programs for
// one or more state machines directly into that shared memory, tracking the
// first/start/wrap/end offsets of each program, and configures the per state
// machine registers (clock divider, execution, shift and pin control).
//
// Instructions are 16-bit words built with the encoder functions (Jmp, Wait,
// In, Out, Push, Pull, Mov, Irq, Set) and decoded back to pioasm-style
// mnemonics for diagnostics. The Builder writes through a Backend, either
// real hardware registers or an in-memory emulation.
package pio
