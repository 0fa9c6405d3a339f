// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package display provides the surfaces a framebuffer is presented to.
//
// A Sink receives a packed 0x00RRGGBB pixel buffer once per frame and reports
// close requests and key presses back to the presentation loop. Two sinks are
// registered by default:
//
//   - "terminal": draws into the terminal with tcell (priority 50)
//   - "png": headless, writes the last frame to a PNG file on Close (priority 10)
//
// Example:
//
//	sink, err := display.Open("terminal", display.Options{
//	    Title:  "glyphwin",
//	    Width:  640,
//	    Height: 360,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sink.Close()
//
// Third-party sinks can be added with Register.
package display
