// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
package event

// Tag is the stable identifier for an attached container or event
// handler. Engines key their per-container state by Tag; two attaches
// with the same Tag address the same state.
type Tag interface{}

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
