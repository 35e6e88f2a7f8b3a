// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780gpio controls the Hitachi HD44780 LCD display chipset
// over discrete GPIO pins, in either 8 bit or 4 bit bus mode.
//
// Unlike backpack based drivers, this package drives the register select,
// enable and data lines directly. The bus width is chosen at construction
// time: New8Bit takes eight data pins and performs one transaction per
// byte, New4Bit takes four data pins and sends each byte as two nibbles,
// high nibble first. Timing uses the worst case fixed delays from the
// datasheet; the busy flag is never read, so the R/W line can be tied low.
//
// The driver is not safe for concurrent use. A pin failure aborts the
// operation in progress and leaves the display in an unknown state; the
// only recovery is constructing a new device.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780gpio
