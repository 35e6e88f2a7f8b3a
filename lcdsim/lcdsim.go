// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim emulates a HD44780 character LCD wired to GPIO pins and
// renders it to the terminal using ANSI color codes.
//
// The simulator hands out gpio.PinOut pins for register select, enable and
// the data lines. It latches the data lines on each falling edge of the
// enable pin, exactly like the real chip, reassembles nibbles into bytes
// in 4 bit mode, and interprets the command stream into a DDRAM model.
//
// Useful for testing drivers without hardware, and for watching what your
// display would show while your LCD is still in the mail.
package lcdsim

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Transaction is one enable pulse as seen on the bus: the register select
// level and the latched data line values. In 4 bit mode Bits holds a
// nibble, in 8 bit mode a full byte.
type Transaction struct {
	RS   bool
	Bits byte
}

// ByteOp is a reassembled logical byte, after nibble pairing in 4 bit
// mode.
type ByteOp struct {
	RS    bool
	Value byte
}

// Opts configures the simulated display.
type Opts struct {
	Rows  int // display rows, default 2
	Cols  int // visible columns, default 16
	Width int // data bus width, 4 or 8, default 4

	// Writer receives Render output. Defaults to a colorable stdout.
	Writer io.Writer

	Palette *ansi256.Palette

	_ struct{}
}

// ddramSize is the chip's display data memory size in bytes.
const ddramSize = 80

// DDRAM start address of each display row, same for 16 and 20 column
// modules except for rows 3 and 4.
var rowOffsets = [4]int{0, 64, 20, 84}

// Simulator models the LCD side of the bus. It is not safe for concurrent
// use, matching the single in-flight operation contract of the bus itself.
type Simulator struct {
	w       io.Writer
	palette ansi256.Palette
	rows    int
	cols    int
	width   int

	rsPin    *Pin
	enPin    *Pin
	dataPins []*Pin

	rs    gpio.Level
	en    gpio.Level
	lines []gpio.Level

	txs []Transaction
	ops []ByteOp

	// chip model
	hasNibble bool
	nibble    byte
	ddram     [ddramSize]byte
	cgram     [64]byte
	addr      int
	inCGRAM   bool
	increment bool
	on        bool
	cursor    bool
	blink     bool

	buf bytes.Buffer
}

// New returns a simulator and wires up its pins. Use default options if
// nil is used.
func New(opts *Opts) *Simulator {
	rows, cols, width := 2, 16, 4
	var w io.Writer
	var p *ansi256.Palette
	if opts != nil {
		if opts.Rows > 0 && opts.Rows <= len(rowOffsets) {
			rows = opts.Rows
		}
		if opts.Cols > 0 {
			cols = opts.Cols
		}
		if opts.Width == 8 {
			width = 8
		}
		w = opts.Writer
		p = opts.Palette
	}
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	if p == nil {
		p = ansi256.Default
	}
	s := &Simulator{
		w:         w,
		palette:   *p,
		rows:      rows,
		cols:      cols,
		width:     width,
		lines:     make([]gpio.Level, width),
		increment: true,
	}
	for i := range s.ddram {
		s.ddram[i] = ' '
	}
	s.rsPin = &Pin{sim: s, name: "SIM_RS", num: 0, role: roleRS}
	s.enPin = &Pin{sim: s, name: "SIM_EN", num: 1, role: roleEN}
	s.dataPins = make([]*Pin, width)
	for i := range s.dataPins {
		s.dataPins[i] = &Pin{
			sim:   s,
			name:  fmt.Sprintf("SIM_D%d", i+8-width),
			num:   2 + i,
			role:  roleData,
			index: i,
		}
	}
	return s
}

// RS returns the register select pin.
func (s *Simulator) RS() *Pin { return s.rsPin }

// EN returns the enable pin.
func (s *Simulator) EN() *Pin { return s.enPin }

// Data returns the data line pins, lowest wired bit first. The slice has
// 4 or 8 entries depending on the configured bus width.
func (s *Simulator) Data() []*Pin {
	return s.dataPins
}

// Transactions returns every enable pulse latched so far.
func (s *Simulator) Transactions() []Transaction {
	return s.txs
}

// Ops returns the reassembled logical bytes latched so far.
func (s *Simulator) Ops() []ByteOp {
	return s.ops
}

// ClearLog drops the recorded transactions and byte ops, keeping the chip
// model state. Call it after initialization to observe a single operation
// in isolation.
func (s *Simulator) ClearLog() {
	s.txs = nil
	s.ops = nil
}

// Screen returns the visible rows as strings.
func (s *Simulator) Screen() []string {
	rows := make([]string, s.rows)
	for r := range rows {
		off := rowOffsets[r]
		rows[r] = string(s.ddram[off : off+s.cols])
	}
	return rows
}

// DisplayOn reports whether the display control register has the display
// enabled.
func (s *Simulator) DisplayOn() bool {
	return s.on
}

func (s *Simulator) String() string {
	return fmt.Sprintf("lcdsim{%dx%d, %d bit}", s.cols, s.rows, s.width)
}

// Halt resets the ANSI state on the output.
func (s *Simulator) Halt() error {
	_, err := s.w.Write([]byte("\033[0m\n"))
	return err
}

// Render draws the display to the writer, one line per row, framed by a
// backlight colored block on each side. A display that is switched off
// renders as blanks.
func (s *Simulator) Render() error {
	s.buf.Reset()
	edge := s.palette.Block(color.NRGBA{R: 64, G: 96, B: 255, A: 255})
	for _, row := range s.Screen() {
		if !s.on {
			row = fmt.Sprintf("%*s", s.cols, "")
		}
		_, _ = s.buf.WriteString(edge)
		_, _ = s.buf.WriteString(row)
		_, _ = s.buf.WriteString(edge)
		_, _ = s.buf.WriteString("\033[0m\n")
	}
	_, err := s.buf.WriteTo(s.w)
	return err
}

// latch is called on the falling edge of EN.
func (s *Simulator) latch() {
	var bits byte
	for i, l := range s.lines {
		if l {
			bits |= 1 << i
		}
	}
	rs := bool(s.rs)
	s.txs = append(s.txs, Transaction{RS: rs, Bits: bits})
	if s.width == 4 {
		if !s.hasNibble {
			s.hasNibble = true
			s.nibble = bits
			return
		}
		s.hasNibble = false
		bits = s.nibble<<4 | bits&0x0f
	}
	s.apply(bits, rs)
}

// apply runs one logical byte through the chip model.
func (s *Simulator) apply(b byte, data bool) {
	s.ops = append(s.ops, ByteOp{RS: data, Value: b})
	if data {
		if s.inCGRAM {
			s.cgram[s.addr&0x3f] = b
			s.addr = (s.addr + 1) & 0x3f
			return
		}
		s.ddram[s.addr%ddramSize] = b
		s.advance()
		return
	}
	// Instructions decode from the highest set bit down.
	switch {
	case b&0x80 != 0:
		s.addr = int(b & 0x7f)
		s.inCGRAM = false
	case b&0x40 != 0:
		s.addr = int(b & 0x3f)
		s.inCGRAM = true
	case b&0x20 != 0:
		// Function set. Bus width is fixed by wiring here, so only the
		// mode switch nibble sequence passes through; nothing to track.
	case b&0x10 != 0:
		if b&0x08 == 0 {
			// Cursor move. Display shift only moves the window, which
			// the flat Screen view does not model.
			if b&0x04 != 0 {
				s.addr = (s.addr + 1) % ddramSize
			} else {
				s.addr = (s.addr + ddramSize - 1) % ddramSize
			}
		}
	case b&0x08 != 0:
		s.on = b&0x04 != 0
		s.cursor = b&0x02 != 0
		s.blink = b&0x01 != 0
	case b&0x04 != 0:
		s.increment = b&0x02 != 0
	case b&0x02 != 0:
		s.addr = 0
		s.inCGRAM = false
	case b&0x01 != 0:
		for i := range s.ddram {
			s.ddram[i] = ' '
		}
		s.addr = 0
		s.inCGRAM = false
	}
}

func (s *Simulator) advance() {
	if s.increment {
		s.addr = (s.addr + 1) % ddramSize
	} else {
		s.addr = (s.addr + ddramSize - 1) % ddramSize
	}
}

const (
	roleRS = iota
	roleEN
	roleData
)

// Pin is a simulated output pin. Setting Fail makes every subsequent Out
// call return that error, for exercising a driver's abort paths.
type Pin struct {
	sim   *Simulator
	name  string
	num   int
	role  int
	index int

	// Fail, when non-nil, is returned by every Out call.
	Fail error

	l gpio.Level
}

func (p *Pin) Name() string { return p.name }

func (p *Pin) Number() int { return p.num }

func (p *Pin) Function() string { return "Out" }

func (p *Pin) String() string { return p.name }

func (p *Pin) Halt() error { return nil }

// Out drives the simulated line. A falling edge on the enable pin latches
// the data lines into the simulator.
func (p *Pin) Out(l gpio.Level) error {
	if p.Fail != nil {
		return p.Fail
	}
	s := p.sim
	switch p.role {
	case roleRS:
		s.rs = l
	case roleEN:
		if s.en == gpio.High && l == gpio.Low {
			s.latch()
		}
		s.en = l
	case roleData:
		s.lines[p.index] = l
	}
	p.l = l
	return nil
}

// PWM is not supported on a simulated pin.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("lcdsim: PWM is not supported")
}

var _ gpio.PinOut = &Pin{}
var _ conn.Resource = &Simulator{}
