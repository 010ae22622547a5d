package emu

import (
	"errors"

	"github.com/ezrec/apio/translate"
)

var f = translate.From

var (
	// ErrFifoFull indicates a push onto a full FIFO would block.
	ErrFifoFull = errors.New(f("fifo would block"))
	// ErrFifoEmpty indicates a pop from an empty FIFO.
	ErrFifoEmpty = errors.New(f("fifo is empty"))
	// ErrExecBacklog indicates too many immediate-execute instructions
	// were queued before the state machine was enabled.
	ErrExecBacklog = errors.New(f("exec backlog exceeded"))
)
