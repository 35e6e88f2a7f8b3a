// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

// DisplayMode is the chip's display control register: display on/off,
// cursor visibility, and cursor blink. Like EntryMode, the whole byte is
// retransmitted whenever any field changes.
type DisplayMode struct {
	Display       bool
	CursorVisible bool
	CursorBlink   bool
}

// DefaultDisplayMode matches the state set during initialization: display
// on, cursor visible, blink off.
var DefaultDisplayMode = DisplayMode{Display: true, CursorVisible: true}

const (
	cmdDisplayControl byte = 0x08
	optDisplayOn      byte = 0x04
	optCursorOn       byte = 0x02
	optBlinkOn        byte = 0x01
)

// asByte encodes the full display control register.
func (d DisplayMode) asByte() byte {
	b := cmdDisplayControl
	if d.Display {
		b |= optDisplayOn
	}
	if d.CursorVisible {
		b |= optCursorOn
	}
	if d.CursorBlink {
		b |= optBlinkOn
	}
	return b
}
