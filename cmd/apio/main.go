// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/apio/asm"
	"github.com/ezrec/apio/emu"
	"github.com/ezrec/apio/hw"
	"github.com/ezrec/apio/pio"
)

// blink loads the default demo: toggle the state machine's first set pin
// at 31 cycle intervals.
func blink(b *pio.Builder) (err error) {
	err = b.Add(pio.Set(pio.SetPindirs, 1))
	if err != nil {
		return
	}
	b.MarkWrapBottom()
	err = b.Add(pio.Set(pio.SetPins, 1).WithDelay(31))
	if err != nil {
		return
	}
	b.MarkWrapTop()
	err = b.Add(pio.Set(pio.SetPins, 0).WithDelay(31))

	return
}

func main() {
	var compile string
	var block int
	var sm int
	var pin int
	var name string
	var trace bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".pio file to assemble")
	flag.IntVar(&block, "b", 0, "PIO block")
	flag.IntVar(&sm, "s", 0, "State machine")
	flag.IntVar(&pin, "p", 0, "Set/output base pin")
	flag.StringVar(&name, "n", "blink", "Program name")
	flag.BoolVar(&trace, "t", false, "Trace register writes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var backend pio.Backend
	var bus *hw.MemBus

	if trace {
		bus = hw.NewMemBus()
		// Host run: every peripheral reports reset-done immediately.
		bus.Mem[hw.ResetsBase+hw.ResetDoneOffset] = ^uint32(0)

		hwbe := hw.NewBackend(bus)
		hwbe.Verbose = verbose

		err := hwbe.EnableGpios()
		if err != nil {
			log.Fatal(err)
		}
		err = hwbe.EnablePios()
		if err != nil {
			log.Fatal(err)
		}
		hwbe.GpioOutput(pin, block)

		backend = hwbe
	} else {
		embe := emu.NewPio()
		embe.Verbose = verbose
		embe.EnablePios()

		backend = embe
	}

	b := pio.NewBuilder(backend)
	b.Verbose = verbose
	b.ClearAllIrqs()

	err := b.SetBlock(block)
	if err != nil {
		log.Fatal(err)
	}
	err = b.SetStateMachine(sm)
	if err != nil {
		log.Fatal(err)
	}

	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose}
		prog, err := assembler.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		if len(prog.Name) != 0 {
			name = prog.Name
		}

		err = prog.LoadInto(b)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		err = blink(b)
		if err != nil {
			log.Fatal(err)
		}
	}

	b.SetClkDiv(15000, 0)
	b.SetExecCtrl(0)
	b.SetShiftCtrl(0)
	b.SetPinCtrl(pio.PinCtrlSetBase(uint8(pin)) | pio.PinCtrlSetCount(1))

	err = b.JmpToStart()
	if err != nil {
		log.Fatal(err)
	}

	for _, line := range b.Listing(name) {
		fmt.Println(line)
	}

	err = b.EndBlock()
	if err != nil {
		log.Fatal(err)
	}

	err = b.Enable(block, 1<<sm)
	if err != nil {
		log.Fatal(err)
	}

	if trace {
		for _, wr := range bus.Trace {
			fmt.Printf("0x%08X <= 0x%08X\n", wr.Addr, wr.Value)
		}
	}
}
