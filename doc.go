// SPDX-License-Identifier: Unlicense OR MIT

/*
Package vectorpen hosts the shared configuration for the vector-pen widget
engines.

The module provides two independent, attachable engines: package pen captures
freehand pointer strokes into smoothed vector paths with layered erase
masking, and package zoom tracks two-finger pinch and wheel input into a
clamped scale and offset transform. Both render into the retained element
tree of package svg; the host owns event delivery and serialization.

This package contains only what the engines share: the logging hook.
*/
package vectorpen
