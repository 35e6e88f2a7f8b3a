// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

const packageName = "hd44780gpio"

// Direction is used by ShiftCursor and ShiftDisplay.
type Direction int

const (
	Left Direction = iota
	Right
)

const (
	cmdClearDisplay byte = 0x01
	cmdReturnHome   byte = 0x02
	cmdShift        byte = 0x10
	cmdSetCGRAMAddr byte = 0x40
	cmdSetDDRAMAddr byte = 0x80

	optShiftDisplay byte = 0x08
	optShiftRight   byte = 0x04
)

// Datasheet worst case delays. The busy flag is never polled, so every
// write waits out the longest documented processing time instead.
const (
	powerOnDelay     = 15 * time.Millisecond
	functionSetDelay = 5 * time.Millisecond
	settleDelay      = 100 * time.Microsecond
)

// HD44780 is a character LCD attached through a DataBus. It keeps the last
// entry mode and display control values sent to the chip; since nothing is
// ever read back, that stored state is assumed to match the hardware.
//
// The device is not safe for concurrent use.
type HD44780 struct {
	bus         DataBus
	entryMode   EntryMode
	displayMode DisplayMode
	backlight   display.DisplayBacklight
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// New8Bit creates a HD44780 on an eight bit bus from a register select
// pin, an enable pin, and data pins d0 through d7. The full power-on
// initialization sequence runs before it returns; on any pin error no
// device is returned.
func New8Bit(rs, en, d0, d1, d2, d3, d4, d5, d6, d7 gpio.PinOut) (*HD44780, error) {
	lcd := &HD44780{
		bus:         NewEightBitBus(rs, en, d0, d1, d2, d3, d4, d5, d6, d7),
		displayMode: DefaultDisplayMode,
	}
	if err := lcd.init8Bit(); err != nil {
		return nil, wrap(err)
	}
	return lcd, nil
}

// New4Bit creates a HD44780 on a four bit bus from a register select pin,
// an enable pin, and data pins d4 through d7. The full power-on
// initialization sequence, including the switch to 4 bit mode, runs before
// it returns; on any pin error no device is returned.
func New4Bit(rs, en, d4, d5, d6, d7 gpio.PinOut) (*HD44780, error) {
	lcd := &HD44780{
		bus:         NewFourBitBus(rs, en, d4, d5, d6, d7),
		displayMode: DefaultDisplayMode,
	}
	if err := lcd.init4Bit(); err != nil {
		return nil, wrap(err)
	}
	return lcd, nil
}

// init8Bit walks the chip from power-on to ready using the 8 bit setup
// procedure from the datasheet. The byte values and delays are fixed;
// reordering or shortening any step risks undefined chip behavior.
func (lcd *HD44780) init8Bit() error {
	// Power-on wait in case the chip was just reset.
	time.Sleep(powerOnDelay)

	// Function set, 8 bit interface.
	if err := lcd.bus.WriteByte(0x30, false); err != nil {
		return err
	}
	time.Sleep(functionSetDelay)

	// 8 bit, two lines, 5x7 font, then display control, clear, home and
	// entry mode.
	for _, cmd := range []byte{0x38, 0x0e, 0x01, 0x07, lcd.entryMode.asByte()} {
		if err := lcd.bus.WriteByte(cmd, false); err != nil {
			return err
		}
		time.Sleep(settleDelay)
	}
	return nil
}

// init4Bit is the 4 bit variant of the setup procedure. The extra leading
// 0x33/0x32 pair drops the chip into 4 bit mode before the shared steps.
func (lcd *HD44780) init4Bit() error {
	time.Sleep(powerOnDelay)

	if err := lcd.bus.WriteByte(0x33, false); err != nil {
		return err
	}
	time.Sleep(functionSetDelay)

	// Finish the mode switch, then 4 bit two line function set, display
	// control, clear, entry mode, and cursor to DDRAM address 0.
	for _, cmd := range []byte{0x32, 0x28, 0x0e, 0x01, lcd.entryMode.asByte(), 0x80} {
		if err := lcd.bus.WriteByte(cmd, false); err != nil {
			return err
		}
		time.Sleep(settleDelay)
	}
	return nil
}

// writeCommand sends one instruction register byte followed by the settle
// delay.
func (lcd *HD44780) writeCommand(cmd byte) error {
	if err := lcd.bus.WriteByte(cmd, false); err != nil {
		return err
	}
	time.Sleep(settleDelay)
	return nil
}

// Clear clears the display and moves the cursor to the first position.
func (lcd *HD44780) Clear() error {
	return lcd.writeCommand(cmdClearDisplay)
}

// Home unshifts the display and returns the cursor to DDRAM address 0
// without clearing.
func (lcd *HD44780) Home() error {
	return lcd.writeCommand(cmdReturnHome)
}

// SetDisplayMode replaces the whole display control register in one
// command instead of one field at a time.
func (lcd *HD44780) SetDisplayMode(mode DisplayMode) error {
	lcd.displayMode = mode
	return lcd.writeCommand(lcd.displayMode.asByte())
}

// SetAutoscroll makes the display scroll automatically when a character is
// written, instead of advancing the cursor.
func (lcd *HD44780) SetAutoscroll(enabled bool) error {
	lcd.entryMode.Autoscroll = enabled
	return lcd.writeCommand(lcd.entryMode.asByte())
}

// SetCursorMode sets which way the cursor moves after each character.
func (lcd *HD44780) SetCursorMode(mode CursorMode) error {
	lcd.entryMode.Cursor = mode
	return lcd.writeCommand(lcd.entryMode.asByte())
}

// SetCursorVisibility shows or hides the cursor.
func (lcd *HD44780) SetCursorVisibility(visible bool) error {
	lcd.displayMode.CursorVisible = visible
	return lcd.writeCommand(lcd.displayMode.asByte())
}

// SetDisplay turns the displayed characters on or off. DDRAM contents are
// preserved while off.
func (lcd *HD44780) SetDisplay(on bool) error {
	lcd.displayMode.Display = on
	return lcd.writeCommand(lcd.displayMode.asByte())
}

// SetCursorBlink turns cursor blinking on or off.
func (lcd *HD44780) SetCursorBlink(blink bool) error {
	lcd.displayMode.CursorBlink = blink
	return lcd.writeCommand(lcd.displayMode.asByte())
}

// SetCursorPos moves the cursor to a DDRAM address. Only the low 7 bits
// are used; the top bit is silently dropped since it is the command bit.
// Line 2 of a two line display starts at address 64.
func (lcd *HD44780) SetCursorPos(position byte) error {
	return lcd.writeCommand(cmdSetDDRAMAddr | (position & 0x7f))
}

// ShiftCursor moves just the cursor one position left or right.
func (lcd *HD44780) ShiftCursor(dir Direction) error {
	cmd := cmdShift
	if dir == Right {
		cmd |= optShiftRight
	}
	return lcd.writeCommand(cmd)
}

// ShiftDisplay moves the entire display window one position left or right.
func (lcd *HD44780) ShiftDisplay(dir Direction) error {
	cmd := cmdShift | optShiftDisplay
	if dir == Right {
		cmd |= optShiftRight
	}
	return lcd.writeCommand(cmd)
}

// WriteByte sends one byte to the data register. Bytes usually map to
// ASCII, but the exact glyphs depend on the character ROM; 0x00-0x07 are
// the CGRAM characters (see CreateChar).
func (lcd *HD44780) WriteByte(value byte) error {
	if err := lcd.bus.WriteByte(value, true); err != nil {
		return err
	}
	time.Sleep(settleDelay)
	return nil
}

// WriteRune sends one rune, truncated to a byte. Runes above 0xff will not
// display what you expect; use WriteByte when in doubt.
func (lcd *HD44780) WriteRune(r rune) error {
	return lcd.WriteByte(byte(r))
}

// Write sends a sequence of bytes to the data register, strictly in order.
// The first pin error stops the transmission; n is the count of bytes
// fully sent before the failure.
func (lcd *HD44780) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if err = lcd.WriteByte(b); err != nil {
			return
		}
		n++
	}
	return
}

// WriteString writes a string to the display at the current cursor
// position.
func (lcd *HD44780) WriteString(text string) (int, error) {
	return lcd.Write([]byte(text))
}

// AttachBacklight associates a backlight controller with the display so
// Backlight and Halt can drive it. Pass nil to detach.
func (lcd *HD44780) AttachBacklight(bl display.DisplayBacklight) {
	lcd.backlight = bl
}

// Backlight sets the backlight intensity. Returns display.ErrNotImplemented
// if no backlight controller is attached.
func (lcd *HD44780) Backlight(intensity display.Intensity) error {
	if lcd.backlight == nil {
		return fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
	}
	return lcd.backlight.Backlight(intensity)
}

// Halt clears the display, turns it off, and turns off the backlight if
// one is attached.
func (lcd *HD44780) Halt() error {
	err := lcd.Clear()
	if err == nil {
		err = lcd.SetDisplay(false)
	}
	if lcd.backlight != nil {
		if blErr := lcd.backlight.Backlight(0); err == nil {
			err = blErr
		}
	}
	return wrap(err)
}

func (lcd *HD44780) String() string {
	return fmt.Sprintf("HD44780{%s}", lcd.bus)
}

var _ conn.Resource = &HD44780{}
