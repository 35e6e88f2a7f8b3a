// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/devices/v3/hd44780gpio/lcdsim"
)

func new8BitLCD(t *testing.T) (*lcdsim.Simulator, *HD44780) {
	t.Helper()
	sim := lcdsim.New(&lcdsim.Opts{Width: 8})
	d := sim.Data()
	lcd, err := New8Bit(sim.RS(), sim.EN(),
		d[0], d[1], d[2], d[3], d[4], d[5], d[6], d[7])
	if err != nil {
		t.Fatal(err)
	}
	return sim, lcd
}

func new4BitLCD(t *testing.T) (*lcdsim.Simulator, *HD44780) {
	t.Helper()
	sim := lcdsim.New(&lcdsim.Opts{Width: 4})
	d := sim.Data()
	lcd, err := New4Bit(sim.RS(), sim.EN(), d[0], d[1], d[2], d[3])
	if err != nil {
		t.Fatal(err)
	}
	return sim, lcd
}

func commands(bytes ...byte) []lcdsim.ByteOp {
	ops := make([]lcdsim.ByteOp, len(bytes))
	for i, b := range bytes {
		ops[i] = lcdsim.ByteOp{RS: false, Value: b}
	}
	return ops
}

func TestInit8Bit(t *testing.T) {
	sim, _ := new8BitLCD(t)
	want := commands(0x30, 0x38, 0x0e, 0x01, 0x07, 0x06)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("init sequence (-want +got):\n%s", diff)
	}
}

func TestInit4Bit(t *testing.T) {
	sim, _ := new4BitLCD(t)
	want := commands(0x33, 0x32, 0x28, 0x0e, 0x01, 0x06, 0x80)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("init sequence (-want +got):\n%s", diff)
	}
}

func TestInitFailure(t *testing.T) {
	pinErr := errors.New("pin stuck")
	sim := lcdsim.New(&lcdsim.Opts{Width: 4})
	sim.EN().Fail = pinErr
	d := sim.Data()
	lcd, err := New4Bit(sim.RS(), sim.EN(), d[0], d[1], d[2], d[3])
	if !errors.Is(err, pinErr) {
		t.Errorf("expected %v, got %v", pinErr, err)
	}
	if lcd != nil {
		t.Error("expected no device on init failure")
	}
}

func TestClearAndHome(t *testing.T) {
	sim, lcd := new8BitLCD(t)
	sim.ClearLog()
	if err := lcd.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := lcd.Home(); err != nil {
		t.Fatal(err)
	}
	want := commands(0x01, 0x02)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
}

func TestSetCursorPos(t *testing.T) {
	sim, lcd := new8BitLCD(t)
	sim.ClearLog()
	// 200 overflows the 7 bit address space and aliases to 72.
	for _, pos := range []byte{200, 72} {
		if err := lcd.SetCursorPos(pos); err != nil {
			t.Fatal(err)
		}
	}
	want := commands(0xc8, 0xc8)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
}

func TestShiftCommands(t *testing.T) {
	sim, lcd := new8BitLCD(t)
	sim.ClearLog()
	if err := lcd.ShiftCursor(Right); err != nil {
		t.Fatal(err)
	}
	if err := lcd.ShiftCursor(Left); err != nil {
		t.Fatal(err)
	}
	if err := lcd.ShiftDisplay(Right); err != nil {
		t.Fatal(err)
	}
	if err := lcd.ShiftDisplay(Left); err != nil {
		t.Fatal(err)
	}
	want := commands(0x14, 0x10, 0x1c, 0x18)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
}

// Mutating one field must retransmit the whole register, reflecting every
// stored field and not just the one changed.
func TestModeMutators(t *testing.T) {
	sim, lcd := new4BitLCD(t)
	sim.ClearLog()

	if err := lcd.SetCursorBlink(true); err != nil {
		t.Fatal(err)
	}
	// Display on + cursor visible are still set from initialization.
	if err := lcd.SetDisplay(false); err != nil {
		t.Fatal(err)
	}
	// Blink stays set from above even with the display off.
	if err := lcd.SetCursorVisibility(false); err != nil {
		t.Fatal(err)
	}
	if err := lcd.SetAutoscroll(true); err != nil {
		t.Fatal(err)
	}
	// Cursor direction from init is still right.
	if err := lcd.SetCursorMode(CursorLeft); err != nil {
		t.Fatal(err)
	}
	want := commands(0x0f, 0x0b, 0x09, 0x07, 0x05)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
}

func TestSetDisplayMode(t *testing.T) {
	sim, lcd := new8BitLCD(t)
	sim.ClearLog()
	err := lcd.SetDisplayMode(DisplayMode{Display: true, CursorBlink: true})
	if err != nil {
		t.Fatal(err)
	}
	want := commands(0x0d)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
}

func TestWriteString(t *testing.T) {
	sim, lcd := new4BitLCD(t)
	sim.ClearLog()
	n, err := lcd.WriteString("AB")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 bytes written, got %d", n)
	}
	want := []lcdsim.ByteOp{
		{RS: true, Value: 'A'},
		{RS: true, Value: 'B'},
	}
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
	if row := sim.Screen()[0]; row[:2] != "AB" {
		t.Errorf("expected screen to start with AB, got %q", row)
	}
}

// failAfterBus passes writes through until a set number of bytes have been
// sent, then fails every call.
type failAfterBus struct {
	sent  []byte
	limit int
	err   error
}

func (b *failAfterBus) WriteByte(value byte, data bool) error {
	if len(b.sent) >= b.limit {
		return b.err
	}
	b.sent = append(b.sent, value)
	return nil
}

func TestWriteAbortsOnFailure(t *testing.T) {
	busErr := errors.New("pin stuck")
	bus := &failAfterBus{limit: 2, err: busErr}
	lcd := &HD44780{bus: bus, displayMode: DefaultDisplayMode}

	n, err := lcd.Write([]byte("ABCD"))
	if !errors.Is(err, busErr) {
		t.Errorf("expected %v, got %v", busErr, err)
	}
	if n != 2 {
		t.Errorf("expected 2 bytes written before failure, got %d", n)
	}
	if diff := cmp.Diff([]byte("AB"), bus.sent); diff != "" {
		t.Errorf("sent bytes (-want +got):\n%s", diff)
	}
}

func TestCreateChar(t *testing.T) {
	sim, lcd := new4BitLCD(t)
	sim.ClearLog()
	glyph := Glyph{0x04, 0x0e, 0x1f, 0x04, 0x04, 0x04, 0x04, 0x00}
	if err := lcd.CreateChar(2, glyph); err != nil {
		t.Fatal(err)
	}
	want := []lcdsim.ByteOp{{RS: false, Value: 0x50}}
	for _, row := range glyph {
		want = append(want, lcdsim.ByteOp{RS: true, Value: row})
	}
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
}

func TestHalt(t *testing.T) {
	sim, lcd := new8BitLCD(t)
	bl := &gpiotest.Pin{}
	lcd.AttachBacklight(NewBacklight(bl))
	if err := lcd.Backlight(0xff); err != nil {
		t.Fatal(err)
	}
	sim.ClearLog()
	if err := lcd.Halt(); err != nil {
		t.Fatal(err)
	}
	want := commands(0x01, 0x0a)
	if diff := cmp.Diff(want, sim.Ops()); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
	if sim.DisplayOn() {
		t.Error("expected display off after Halt")
	}
	if bl.L != false {
		t.Error("expected backlight off after Halt")
	}
}

func TestBacklightNotAttached(t *testing.T) {
	_, lcd := new8BitLCD(t)
	if err := lcd.Backlight(0xff); !errors.Is(err, display.ErrNotImplemented) {
		t.Errorf("expected display.ErrNotImplemented, got %v", err)
	}
}

func TestString(t *testing.T) {
	_, lcd := new8BitLCD(t)
	if len(lcd.String()) == 0 {
		t.Error("String()")
	}
}
