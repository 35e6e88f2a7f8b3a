// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

// CursorMode selects which way the cursor moves after a character is
// written.
type CursorMode int

const (
	// CursorRight advances the cursor after each character (the default).
	CursorRight CursorMode = iota
	// CursorLeft moves the cursor backwards after each character.
	CursorLeft
)

// EntryMode is the chip's entry mode register: cursor direction plus
// display autoscroll. The whole byte is retransmitted whenever any field
// changes.
type EntryMode struct {
	Cursor     CursorMode
	Autoscroll bool
}

const (
	cmdEntryMode  byte = 0x04
	optIncrement  byte = 0x02
	optEntryShift byte = 0x01
)

// asByte encodes the full entry mode register.
func (e EntryMode) asByte() byte {
	b := cmdEntryMode
	if e.Cursor == CursorRight {
		b |= optIncrement
	}
	if e.Autoscroll {
		b |= optEntryShift
	}
	return b
}
