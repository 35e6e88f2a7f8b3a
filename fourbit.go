// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// FourBitBus drives a HD44780 using only the four upper data lines. Each
// byte is split into two transactions, high nibble first, so a write takes
// twice as long as on an EightBitBus.
type FourBitBus struct {
	rs   gpio.PinOut
	en   gpio.PinOut
	data [4]gpio.PinOut // data[i] wired to D4+i
}

// NewFourBitBus returns a bus using the register select pin, the enable
// pin, and the four data pins d4 through d7. The bus takes exclusive
// ownership of the pins.
func NewFourBitBus(rs, en, d4, d5, d6, d7 gpio.PinOut) *FourBitBus {
	return &FourBitBus{
		rs:   rs,
		en:   en,
		data: [4]gpio.PinOut{d4, d5, d6, d7},
	}
}

// WriteByte performs two bus transactions. RS is set once and held across
// both nibbles since they belong to the same logical byte.
func (b *FourBitBus) WriteByte(value byte, data bool) error {
	if err := b.rs.Out(gpio.Level(data)); err != nil {
		return err
	}
	if err := b.writeNibble(value >> 4); err != nil {
		return err
	}
	return b.writeNibble(value & 0x0f)
}

func (b *FourBitBus) writeNibble(nibble byte) error {
	if err := setLines(b.data[:], nibble); err != nil {
		return err
	}
	return pulse(b.en)
}

func (b *FourBitBus) String() string {
	return fmt.Sprintf("FourBitBus{rs: %s, en: %s, d4: %s}", b.rs, b.en, b.data[0])
}

// Halt releases the data lines by driving them low. The pins remain owned
// by the bus.
func (b *FourBitBus) Halt() error {
	return setLines(b.data[:], 0)
}

var _ DataBus = &FourBitBus{}
