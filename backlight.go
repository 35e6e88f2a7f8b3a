// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780gpio

import (
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// GPIOMonoBacklight is a monochrome backlight driven by a single GPIO pin.
// It implements display.DisplayBacklight and can be attached to a HD44780
// with AttachBacklight.
type GPIOMonoBacklight struct {
	blPin gpio.PinOut
}

// NewBacklight returns a backlight controller for the given pin.
func NewBacklight(blPin gpio.PinOut) *GPIOMonoBacklight {
	return &GPIOMonoBacklight{blPin: blPin}
}

// Backlight turns the backlight on for any non-zero intensity. The pin is
// binary, so intermediate intensities are not available.
func (bl *GPIOMonoBacklight) Backlight(intensity display.Intensity) error {
	return bl.blPin.Out(gpio.Level(intensity > 0))
}

var _ display.DisplayBacklight = &GPIOMonoBacklight{}
