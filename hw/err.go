package hw

import (
	"errors"

	"github.com/ezrec/apio/translate"
)

var f = translate.From

var (
	// ErrResetTimeout indicates a peripheral did not come out of reset
	// within the poll limit.
	ErrResetTimeout = errors.New(f("reset release timed out"))
	// ErrFifoFull indicates a TX FIFO push would block past the poll
	// limit.
	ErrFifoFull = errors.New(f("fifo would block"))
	// ErrFifoEmpty indicates an RX FIFO pop found no data within the
	// poll limit.
	ErrFifoEmpty = errors.New(f("fifo is empty"))
)
