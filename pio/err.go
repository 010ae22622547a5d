package pio

import (
	"errors"

	"github.com/ezrec/apio/translate"
)

var f = translate.From

var (
	ErrBlockInvalid        = errors.New(f("pio block invalid"))
	ErrStateMachineInvalid = errors.New(f("state machine invalid"))
	ErrMaskInvalid         = errors.New(f("enable mask invalid"))
	ErrProgramFull         = errors.New(f("instruction memory full"))
	ErrBlockEnded          = errors.New(f("block already written"))
)
