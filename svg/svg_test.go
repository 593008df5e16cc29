// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/burhanyldz/vector-pen/f32"
)

func TestTreeParenting(t *testing.T) {
	root := NewSVG(100, 50)
	g := NewGroup()
	p := &Path{D: "M 0 0 L 1 1"}
	root.Append(g)
	g.Append(p)
	require.Equal(t, Container(root), g.Parent())
	require.Equal(t, Container(g), p.Parent())

	// Appending to another container reparents.
	root.Append(p)
	require.Equal(t, Container(root), p.Parent())
	require.Empty(t, g.Children())
	require.Equal(t, []Element{g, p}, root.Children())

	root.Remove(g)
	require.Nil(t, g.Parent())
	require.Equal(t, []Element{p}, root.Children())

	root.ReplaceChildren(g)
	require.Nil(t, p.Parent())
	require.Equal(t, []Element{g}, root.Children())
}

func TestMarshal(t *testing.T) {
	root := NewSVG(200, 100)
	defs := NewDefs()
	mask := NewMask("vp-mask-1")
	mask.Append(
		&Rect{Width: 200, Height: 100, Fill: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		&Path{D: "M 10 10 L 20 10", FillNone: true, Stroke: color.NRGBA{A: 0xff}, StrokeWidth: 40, Round: true},
	)
	defs.Append(mask)
	layer := NewGroup()
	wrap := NewGroup()
	wrap.MaskID = "vp-mask-1"
	wrap.Append(&Path{
		D:                 "M 0 0 Q 5 5 7.5 5 L 10 5",
		FillNone:          true,
		Stroke:            color.NRGBA{R: 0x30, G: 0x50, B: 0xff, A: 0xff},
		StrokeWidth:       3,
		Round:             true,
		PointerEventsNone: true,
	})
	layer.Append(wrap)
	root.Append(defs, layer)

	want := `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100">` +
		`<defs><mask id="vp-mask-1">` +
		`<rect x="0" y="0" width="200" height="100" fill="#ffffff"/>` +
		`<path d="M 10 10 L 20 10" fill="none" stroke="#000000" stroke-width="40" stroke-linecap="round" stroke-linejoin="round"/>` +
		`</mask></defs>` +
		`<g><g mask="url(#vp-mask-1)">` +
		`<path d="M 0 0 Q 5 5 7.5 5 L 10 5" fill="none" stroke="#3050ff" stroke-width="3" stroke-linecap="round" stroke-linejoin="round" pointer-events="none"/>` +
		`</g></g></svg>`
	require.Equal(t, want, root.String())
	// Marshal is deterministic.
	require.Equal(t, root.String(), root.String())
}

func TestMarshalTransform(t *testing.T) {
	g := NewGroup()
	g.SetTransform("translate(10px, 5px) scale(1.5)")
	require.Equal(t, `<g transform="translate(10px, 5px) scale(1.5)"/>`, Marshal(g))

	r := &Rect{Width: 1, Height: 1, Fill: color.NRGBA{R: 0xff, A: 0xff}}
	r.SetTransform("scale(2)")
	require.Equal(t, `<rect x="0" y="0" width="1" height="1" fill="#ff0000" transform="scale(2)"/>`, Marshal(r))
}

func TestMarshalEscaping(t *testing.T) {
	g := NewGroup()
	g.ID = `a<b>&"c"`
	out := Marshal(g)
	require.NotContains(t, out[1:], "<")
	require.Contains(t, out, "&lt;b&gt;&amp;&quot;c&quot;")
}

func TestWriteTo(t *testing.T) {
	root := NewSVG(10, 10)
	var sb strings.Builder
	n, err := root.WriteTo(&sb)
	require.NoError(t, err)
	require.Equal(t, int64(len(sb.String())), n)
	require.Equal(t, root.String(), sb.String())
}

func TestPathData(t *testing.T) {
	var d PathData
	d.MoveTo(f32.Pt(10, 10))
	d.QuadTo(f32.Pt(15, 10), f32.Pt(15, 10))
	d.LineTo(f32.Pt(15, 10))
	require.Equal(t, "M 10 10 Q 15 10 15 10 L 15 10", d.String())
}

func TestFormatFloat(t *testing.T) {
	for _, tc := range []struct {
		f    float32
		want string
	}{
		{0, "0"},
		{10, "10"},
		{7.5, "7.5"},
		{-0.25, "-0.25"},
		{0.002, "0.002"},
	} {
		require.Equal(t, tc.want, FormatFloat(tc.f))
	}
}
