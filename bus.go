// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DataBus is the parallel bus a HD44780 controller is attached to. The two
// implementations are EightBitBus and FourBitBus.
//
// WriteByte presents value on the data lines and latches it into the chip.
// When data is true the byte goes to the data register (DDRAM/CGRAM),
// otherwise to the instruction register. A bus owns its pins exclusively;
// nothing else may drive them once the bus is constructed.
//
// Any pin error aborts the write immediately and is returned as-is. The
// lines are left in whatever state they reached; there is no rollback.
type DataBus interface {
	WriteByte(value byte, data bool) error
}

// enablePulseWidth is the EN high hold time. The datasheet minimum cycle
// is 500ns; 2µs gives margin on fast GPIO paths.
const enablePulseWidth = 2 * time.Microsecond

// pulse latches the data lines by toggling EN high then low. The chip
// reads the lines on the falling edge.
func pulse(en gpio.PinOut) error {
	if err := en.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(enablePulseWidth)
	return en.Out(gpio.Low)
}

// setLines drives one pin per bit of value, bit 0 first.
func setLines(pins []gpio.PinOut, value byte) error {
	for i, p := range pins {
		if err := p.Out(gpio.Level(value&(1<<i) != 0)); err != nil {
			return err
		}
	}
	return nil
}
