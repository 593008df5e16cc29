// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Marshal returns the markup of e and its descendants.
func Marshal(e Element) string {
	var enc encoder
	e.encode(&enc)
	return enc.buf.String()
}

// WriteTo writes the markup of the surface to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var enc encoder
	s.encode(&enc)
	n, err := w.Write(enc.buf.Bytes())
	return int64(n), err
}

// String returns the markup of the surface.
func (s *SVG) String() string {
	return Marshal(s)
}

// FormatFloat formats f in the shortest decimal form that parses
// back to f. It is the number format of all generated markup,
// path data and transform strings.
func FormatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// encoder accumulates markup. Attributes are written in a fixed
// per-element order so output is deterministic.
type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) open(tag string) {
	e.buf.WriteByte('<')
	e.buf.WriteString(tag)
}

func (e *encoder) attr(name, value string) {
	e.buf.WriteByte(' ')
	e.buf.WriteString(name)
	e.buf.WriteString(`="`)
	e.buf.WriteString(escapeAttr(value))
	e.buf.WriteByte('"')
}

func (e *encoder) floatAttr(name string, value float32) {
	e.attr(name, FormatFloat(value))
}

// close ends the open tag, encodes children and writes the end tag.
// Childless containers collapse to a self-closing tag.
func (e *encoder) close(tag string, children []Element) {
	if len(children) == 0 {
		e.buf.WriteString("/>")
		return
	}
	e.buf.WriteByte('>')
	for _, child := range children {
		child.encode(e)
	}
	e.buf.WriteString("</")
	e.buf.WriteString(tag)
	e.buf.WriteByte('>')
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func (s *SVG) encode(e *encoder) {
	e.open("svg")
	e.attr("xmlns", "http://www.w3.org/2000/svg")
	e.floatAttr("width", s.Width)
	e.floatAttr("height", s.Height)
	e.close("svg", s.children)
}

func (d *Defs) encode(e *encoder) {
	e.open("defs")
	e.close("defs", d.children)
}

func (g *Group) encode(e *encoder) {
	e.open("g")
	if g.ID != "" {
		e.attr("id", g.ID)
	}
	if g.transform != "" {
		e.attr("transform", g.transform)
	}
	if g.MaskID != "" {
		e.attr("mask", "url(#"+g.MaskID+")")
	}
	e.close("g", g.children)
}

func (m *Mask) encode(e *encoder) {
	e.open("mask")
	if m.ID != "" {
		e.attr("id", m.ID)
	}
	e.close("mask", m.children)
}

func (p *Path) encode(e *encoder) {
	e.open("path")
	if p.ID != "" {
		e.attr("id", p.ID)
	}
	e.attr("d", p.D)
	if p.FillNone {
		e.attr("fill", "none")
	} else {
		e.attr("fill", FormatColor(p.Fill))
	}
	if p.StrokeNone {
		e.attr("stroke", "none")
	} else {
		e.attr("stroke", FormatColor(p.Stroke))
	}
	if p.StrokeWidth > 0 {
		e.floatAttr("stroke-width", p.StrokeWidth)
	}
	if p.Round {
		e.attr("stroke-linecap", "round")
		e.attr("stroke-linejoin", "round")
	}
	if p.PointerEventsNone {
		e.attr("pointer-events", "none")
	}
	if p.transform != "" {
		e.attr("transform", p.transform)
	}
	e.buf.WriteString("/>")
}

func (r *Rect) encode(e *encoder) {
	e.open("rect")
	e.floatAttr("x", r.X)
	e.floatAttr("y", r.Y)
	e.floatAttr("width", r.Width)
	e.floatAttr("height", r.Height)
	e.attr("fill", FormatColor(r.Fill))
	if r.transform != "" {
		e.attr("transform", r.transform)
	}
	e.buf.WriteString("/>")
}
