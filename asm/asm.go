// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm is a single pass assembler for PIO programs, accepting the
// same mnemonics the disassembler emits.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/apio/pio"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Opcode is one assembled instruction with its source context.
type Opcode struct {
	LineNo    int      // Source line number.
	Offset    int      // Program relative instruction offset.
	Words     []string // Source words, after equate expansion.
	Instr     pio.Instruction
	LinkLabel string // Jump label to resolve, if any.
}

// Program is the result of assembling one source stream. Marker offsets are
// program relative; -1 means the directive never appeared.
type Program struct {
	Name    string
	Opcodes []Opcode
	Label   map[string]int

	Start      int
	WrapBottom int
	WrapTop    int
	End        int
}

// Instructions returns the assembled instruction words, linked at program
// offset zero.
func (prog *Program) Instructions() (out []pio.Instruction) {
	out = make([]pio.Instruction, len(prog.Opcodes))
	for n, op := range prog.Opcodes {
		out[n] = op.Instr
	}
	return
}

// LoadInto emits the program through a builder at its current cursor,
// re-linking jump labels against the load offset and applying any marker
// directives the source carried.
func (prog *Program) LoadInto(b *pio.Builder) (err error) {
	base := int(b.Label())

	for _, op := range prog.Opcodes {
		in := op.Instr
		if op.LinkLabel != "" {
			offset, ok := prog.Label[op.LinkLabel]
			if !ok {
				err = ErrLabelMissing(op.LinkLabel)
				return
			}
			in = (in &^ 0x1f) | pio.Instruction((offset+base)&0x1f)
		}

		if prog.Start == op.Offset {
			b.MarkStart()
		}
		if prog.WrapBottom == op.Offset {
			b.MarkWrapBottom()
		}
		if prog.WrapTop == op.Offset {
			b.MarkWrapTop()
		}
		if prog.End == op.Offset {
			b.MarkEnd()
		}

		err = b.Add(in)
		if err != nil {
			return
		}
	}

	return
}

// Assembler assembles PIO source text. The zero value is ready to use.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to program offsets.
	Equate    map[string]string // Map of equates.

	name       string
	start      int
	wrapBottom int
	wrapTop    int
	end        int
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	v64, err := strconv.ParseInt(word, 0, 33)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 <= 0xffffffff && v64 >= -int64(0x80000000) {
		if v64 < 0 {
			value = uint32(0xffffffff + (v64 + 1))
		} else {
			value = uint32(v64)
		}
	}

	if invert {
		value = ^value
	}

	return
}

// fieldOf returns a small operand field, range checked.
func (asm *Assembler) fieldOf(word string, limit uint32) (field uint8, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value > limit {
		err = ErrOpcodeValueRange
		return
	}
	field = uint8(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be operand
			// names or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine expands a single source line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	// Commas are word separators, as in pioasm.
	line = strings.ReplaceAll(line, ",", " ")

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = len(asm.Opcode)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.name = ""
	asm.start = -1
	asm.wrapBottom = -1
	asm.wrapTop = -1
	asm.end = -1

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		offset, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Instr = (op.Instr &^ 0x1f) | pio.Instruction(offset&0x1f)
	}

	prog = &Program{
		Name:       asm.name,
		Opcodes:    slices.Clone(asm.Opcode),
		Label:      maps.Clone(asm.Label),
		Start:      asm.start,
		WrapBottom: asm.wrapBottom,
		WrapTop:    asm.wrapTop,
		End:        asm.end,
	}

	return
}

// Operand name maps, the inverse of the disassembly tables.

var jmpCondMap = map[string]pio.JmpCond{
	"!x":    pio.JmpXZero,
	"x--":   pio.JmpXDec,
	"!y":    pio.JmpYZero,
	"y--":   pio.JmpYDec,
	"x!=y":  pio.JmpXNotY,
	"pin":   pio.JmpPin,
	"!osre": pio.JmpOsrNotEmpty,
}

var waitSrcMap = map[string]pio.WaitSrc{
	"gpio":   pio.WaitSrcGpio,
	"pin":    pio.WaitSrcPin,
	"irq":    pio.WaitSrcIrq,
	"jmppin": pio.WaitSrcJmpPin,
}

var inSrcMap = map[string]pio.InSrc{
	"pins": pio.InPins,
	"x":    pio.InX,
	"y":    pio.InY,
	"null": pio.InNull,
	"isr":  pio.InIsr,
	"osr":  pio.InOsr,
}

var outDestMap = map[string]pio.OutDest{
	"pins":    pio.OutPins,
	"x":       pio.OutX,
	"y":       pio.OutY,
	"null":    pio.OutNull,
	"pindirs": pio.OutPindirs,
	"pc":      pio.OutPC,
	"isr":     pio.OutIsr,
	"exec":    pio.OutExec,
}

var movDestMap = map[string]pio.MovDest{
	"pins":    pio.MovDestPins,
	"x":       pio.MovDestX,
	"y":       pio.MovDestY,
	"pindirs": pio.MovDestPindirs,
	"exec":    pio.MovDestExec,
	"pc":      pio.MovDestPC,
	"isr":     pio.MovDestIsr,
	"osr":     pio.MovDestOsr,
}

var movSrcMap = map[string]pio.MovSrc{
	"pins":   pio.MovSrcPins,
	"x":      pio.MovSrcX,
	"y":      pio.MovSrcY,
	"null":   pio.MovSrcNull,
	"status": pio.MovSrcStatus,
	"isr":    pio.MovSrcIsr,
	"osr":    pio.MovSrcOsr,
}

var setDestMap = map[string]pio.SetDest{
	"pins":    pio.SetPins,
	"x":       pio.SetX,
	"y":       pio.SetY,
	"pindirs": pio.SetPindirs,
}

// fifoIndex parses a "rxfifo[y]" or "txfifo[2]" destination.
func fifoIndex(word, fifo string) (byIndex bool, index uint8, ok bool) {
	if !strings.HasPrefix(word, fifo+"[") || !strings.HasSuffix(word, "]") {
		return
	}
	arg := word[len(fifo)+1 : len(word)-1]
	if arg == "y" {
		ok = true
		return
	}
	slot, err := strconv.ParseUint(arg, 0, 8)
	if err != nil || slot > 3 {
		return
	}
	byIndex = true
	index = uint8(slot)
	ok = true
	return
}

// parseWords assembles the words of one source line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var instrs []pio.Instruction
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		for _, in := range instrs {
			opcode := Opcode{
				LineNo:    lineno,
				Offset:    len(asm.Opcode),
				Words:     initial_words,
				Instr:     in,
				LinkLabel: label,
			}
			asm.Opcode = append(asm.Opcode, opcode)
		}
	}()

	// Marker directives bind the next instruction, except .wrap which
	// closes on the previous one.
	switch words[0] {
	case ".program":
		if len(words) != 2 {
			err = ErrProgramSyntax
			return
		}
		asm.name = words[1]
		return
	case ".start":
		asm.start = len(asm.Opcode)
		return
	case ".wrap_target":
		asm.wrapBottom = len(asm.Opcode)
		return
	case ".wrap":
		if len(asm.Opcode) == 0 {
			err = ErrWrapEarly
			return
		}
		asm.wrapTop = len(asm.Opcode) - 1
		return
	case ".end":
		asm.end = len(asm.Opcode)
		return
	}

	// A trailing [N] word is a delay count.
	var delay uint8
	last := words[len(words)-1]
	if strings.HasPrefix(last, "[") && strings.HasSuffix(last, "]") {
		delay, err = asm.fieldOf(last[1:len(last)-1], 31)
		if err != nil {
			return
		}
		words = words[:len(words)-1]
	}

	var in pio.Instruction

	switch words[0] {
	case "nop":
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		in = pio.Nop()

	case "jmp":
		args := words[1:]
		cond := pio.JmpAlways
		if len(args) > 1 {
			var ok bool
			cond, ok = jmpCondMap[args[0]]
			if !ok {
				err = ErrOpcodeInvalid
				return
			}
			args = args[1:]
		}
		if len(args) != 1 {
			err = ErrOpcodeValueMissing
			return
		}
		var target uint8
		target, err = asm.fieldOf(args[0], 31)
		if errors.Is(err, ErrOpcodeValueRange) {
			return
		}
		if err != nil {
			// Not a number: a forward or backward label.
			err = nil
			label = args[0]
			target = 0
		}
		in = pio.Jmp(cond, target)

	case "wait":
		if len(words) < 4 {
			err = ErrOpcodeValueMissing
			return
		}
		var polarity uint8
		polarity, err = asm.fieldOf(words[1], 1)
		if err != nil {
			return
		}
		src, ok := waitSrcMap[words[2]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		args := words[3:]
		if src == pio.WaitSrcIrq {
			mode := pio.IrqIndexDirect
			switch args[0] {
			case "prev":
				mode = pio.IrqIndexPrev
				args = args[1:]
			case "next":
				mode = pio.IrqIndexNext
				args = args[1:]
			}
			if len(args) > 1 && args[len(args)-1] == "rel" {
				mode = pio.IrqIndexRel
				args = args[:len(args)-1]
			}
			if len(args) != 1 {
				err = ErrOpcodeValueMissing
				return
			}
			var index uint8
			index, err = asm.fieldOf(args[0], 7)
			if err != nil {
				return
			}
			in = pio.WaitIrq(polarity != 0, mode, index)
		} else {
			if len(args) != 1 {
				err = ErrOpcodeValueMissing
				return
			}
			var index uint8
			index, err = asm.fieldOf(args[0], 31)
			if err != nil {
				return
			}
			in = pio.Wait(polarity != 0, src, index)
		}

	case "in":
		if len(words) != 3 {
			err = ErrOpcodeValueMissing
			return
		}
		src, ok := inSrcMap[words[1]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		var count uint8
		count, err = asm.fieldOf(words[2], 31)
		if err != nil {
			return
		}
		in = pio.In(src, count)

	case "out":
		if len(words) != 3 {
			err = ErrOpcodeValueMissing
			return
		}
		dest, ok := outDestMap[words[1]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		var count uint8
		count, err = asm.fieldOf(words[2], 31)
		if err != nil {
			return
		}
		in = pio.Out(dest, count)

	case "push", "pull":
		args := words[1:]
		full := false
		if len(args) > 0 && (args[0] == "iffull" || args[0] == "ifempty") {
			full = true
			args = args[1:]
		}
		blocking := true
		if len(args) > 0 {
			switch args[0] {
			case "block":
				args = args[1:]
			case "noblock":
				blocking = false
				args = args[1:]
			}
		}
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		if words[0] == "push" {
			in = pio.Push(full, blocking)
		} else {
			in = pio.Pull(full, blocking)
		}

	case "mov":
		if len(words) != 3 {
			err = ErrOpcodeValueMissing
			return
		}
		if byIndex, index, ok := fifoIndex(words[1], "rxfifo"); ok {
			if words[2] != "isr" {
				err = ErrOpcodeInvalid
				return
			}
			in = pio.MovISRToRxFifo(byIndex, index)
			break
		}
		if byIndex, index, ok := fifoIndex(words[1], "txfifo"); ok {
			if words[2] != "osr" {
				err = ErrOpcodeInvalid
				return
			}
			in = pio.MovOSRToTxFifo(byIndex, index)
			break
		}
		dest, ok := movDestMap[words[1]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		src_word := words[2]
		op := pio.MovOpCopy
		switch {
		case strings.HasPrefix(src_word, "::"):
			op = pio.MovOpReverse
			src_word = src_word[2:]
		case strings.HasPrefix(src_word, "~"):
			op = pio.MovOpInvert
			src_word = src_word[1:]
		}
		src, ok := movSrcMap[src_word]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		in = pio.Mov(dest, op, src)

	case "irq":
		args := words[1:]
		mode := pio.IrqIndexDirect
		if len(args) > 0 {
			switch args[0] {
			case "prev":
				mode = pio.IrqIndexPrev
				args = args[1:]
			case "next":
				mode = pio.IrqIndexNext
				args = args[1:]
			}
		}
		clearFlag := false
		waitFlag := false
		if len(args) > 0 {
			switch args[0] {
			case "set", "nowait":
				args = args[1:]
			case "clear":
				clearFlag = true
				args = args[1:]
			case "wait":
				waitFlag = true
				args = args[1:]
			}
		}
		if len(args) > 1 && args[len(args)-1] == "rel" {
			mode = pio.IrqIndexRel
			args = args[:len(args)-1]
		}
		if len(args) != 1 {
			err = ErrOpcodeValueMissing
			return
		}
		var index uint8
		index, err = asm.fieldOf(args[0], 7)
		if err != nil {
			return
		}
		in = pio.Irq(clearFlag, waitFlag, mode, index)

	case "set":
		if len(words) != 3 {
			err = ErrOpcodeValueMissing
			return
		}
		dest, ok := setDestMap[words[1]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		var value uint8
		value, err = asm.fieldOf(words[2], 31)
		if err != nil {
			return
		}
		in = pio.Set(dest, value)

	default:
		err = ErrInstructionInvalid
		return
	}

	instrs = append(instrs, in.WithDelay(delay))

	return
}
