package hw

// releaseReset clears the given peripheral reset bits, then polls
// RESET_DONE until every released peripheral reports ready.
func (be *Backend) releaseReset(bits uint32) (err error) {
	reset := be.bus.Read32(ResetsBase + ResetOffset)
	be.bus.Write32(ResetsBase+ResetOffset, reset&^bits)

	limit := be.pollLimit()
	for be.bus.Read32(ResetsBase+ResetDoneOffset)&bits != bits {
		limit--
		if limit <= 0 {
			err = ErrResetTimeout
			return
		}
	}

	return
}

// EnableJtag brings the JTAG logic out of reset.
func (be *Backend) EnableJtag() error {
	return be.releaseReset(ResetJtag)
}

// EnableGpios brings the GPIO and pad banks out of reset. Required before
// any GpioOutput call.
func (be *Backend) EnableGpios() error {
	return be.releaseReset(ResetIoBank0 | ResetPadsBank0)
}

// EnablePios brings all three PIO blocks out of reset.
func (be *Backend) EnablePios() error {
	return be.releaseReset(ResetPio0 | ResetPio1 | ResetPio2)
}

// EnablePio brings a single PIO block out of reset.
func (be *Backend) EnablePio(block int) error {
	return be.releaseReset(blockReset[block])
}

// GpioOutput routes a pin to the given PIO block and configures its pad
// for output: isolation off, output driver on.
func (be *Backend) GpioOutput(pin int, block int) {
	be.bus.Write32(GpioCtrlAddr(pin), blockGpioFunc[block])

	pad := be.bus.Read32(PadAddr(pin))
	be.bus.Write32(PadAddr(pin), pad&^(PadIso|PadOutputDis))
}

// GpioFuncOf returns the function select a pin must carry to be driven by
// the given block.
func GpioFuncOf(block int) uint32 {
	return blockGpioFunc[block]
}
