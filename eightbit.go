// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// EightBitBus drives a HD44780 with all eight data lines connected. Each
// byte is latched in a single enable pulse, at the cost of four more GPIO
// lines than FourBitBus.
type EightBitBus struct {
	rs   gpio.PinOut
	en   gpio.PinOut
	data [8]gpio.PinOut // data[i] wired to Di
}

// NewEightBitBus returns a bus using the register select pin, the enable
// pin, and the eight data pins d0 through d7. The bus takes exclusive
// ownership of the pins.
func NewEightBitBus(rs, en, d0, d1, d2, d3, d4, d5, d6, d7 gpio.PinOut) *EightBitBus {
	return &EightBitBus{
		rs:   rs,
		en:   en,
		data: [8]gpio.PinOut{d0, d1, d2, d3, d4, d5, d6, d7},
	}
}

// WriteByte performs one bus transaction: RS, then the eight data lines,
// then a single enable pulse.
func (b *EightBitBus) WriteByte(value byte, data bool) error {
	if err := b.rs.Out(gpio.Level(data)); err != nil {
		return err
	}
	if err := setLines(b.data[:], value); err != nil {
		return err
	}
	return pulse(b.en)
}

func (b *EightBitBus) String() string {
	return fmt.Sprintf("EightBitBus{rs: %s, en: %s, d0: %s}", b.rs, b.en, b.data[0])
}

// Halt releases the data lines by driving them low. The pins remain owned
// by the bus.
func (b *EightBitBus) Halt() error {
	return setLines(b.data[:], 0)
}

var _ DataBus = &EightBitBus{}
