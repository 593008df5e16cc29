// SPDX-License-Identifier: Unlicense OR MIT

/*
Package svg implements a retained tree of SVG elements.

The widget engines mutate the tree in place; hosts serialize it
with Marshal or WriteTo whenever they need markup. Attribute order
and number formatting are fixed, so the markup of a given tree is
stable across runs.
*/
package svg

import (
	"image/color"
	"slices"
)

// Element is a node of the scene tree. The implementations are the
// element types of this package.
type Element interface {
	// Parent returns the container the element is attached to, or
	// nil for a detached element.
	Parent() Container

	setParent(Container)
	encode(b *encoder)
}

// Container is an Element holding child elements.
type Container interface {
	Element

	// Children returns the children in document order. The returned
	// slice is owned by the container and must not be modified.
	Children() []Element
	// Append adds children at the end of the container, detaching
	// each from its previous parent first.
	Append(children ...Element)
	// Remove detaches child if it is a direct child of the
	// container.
	Remove(child Element)
	// ReplaceChildren detaches all current children and appends the
	// given ones.
	ReplaceChildren(children ...Element)
}

// Transformable is an Element carrying a transform attribute.
type Transformable interface {
	Element

	SetTransform(t string)
	Transform() string
}

type node struct {
	par Container
}

func (n *node) Parent() Container     { return n.par }
func (n *node) setParent(c Container) { n.par = c }

type container struct {
	node
	// self is the Container the struct is embedded in; children
	// record it as their parent.
	self     Container
	children []Element
}

func (c *container) Children() []Element { return c.children }

func (c *container) Append(children ...Element) {
	for _, child := range children {
		if p := child.Parent(); p != nil {
			p.Remove(child)
		}
		child.setParent(c.self)
		c.children = append(c.children, child)
	}
}

func (c *container) Remove(child Element) {
	i := slices.Index(c.children, child)
	if i < 0 {
		return
	}
	c.children = slices.Delete(c.children, i, i+1)
	child.setParent(nil)
}

func (c *container) ReplaceChildren(children ...Element) {
	for _, child := range c.children {
		child.setParent(nil)
	}
	c.children = nil
	c.Append(children...)
}

type transformable struct {
	transform string
}

func (t *transformable) SetTransform(s string) { t.transform = s }
func (t *transformable) Transform() string     { return t.transform }

// SVG is the root element of an overlay surface.
type SVG struct {
	container
	Width, Height float32
}

// NewSVG returns an empty root element of the given size.
func NewSVG(width, height float32) *SVG {
	s := &SVG{Width: width, Height: height}
	s.self = s
	return s
}

// Defs holds referenced resources such as masks.
type Defs struct {
	container
}

// NewDefs returns an empty defs element.
func NewDefs() *Defs {
	d := &Defs{}
	d.self = d
	return d
}

// Group groups child elements. A group optionally references a Mask
// gating the visibility of its content.
type Group struct {
	container
	transformable
	ID string
	// MaskID is the ID of a Mask in the surface's defs, rendered as
	// mask="url(#id)". Empty means unmasked.
	MaskID string
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	g := &Group{}
	g.self = g
	return g
}

// Mask is a luminance mask: white areas of its content keep the
// masked element visible, black areas hide it.
type Mask struct {
	container
	ID string
}

// NewMask returns an empty mask with the given resource ID.
func NewMask(id string) *Mask {
	m := &Mask{ID: id}
	m.self = m
	return m
}

// Path is a vector path element.
type Path struct {
	node
	transformable
	ID string
	// D is the encoded path data.
	D string
	// Fill is the fill color; FillNone overrides it with none.
	Fill     color.NRGBA
	FillNone bool
	// Stroke is the stroke color; StrokeNone overrides it with none.
	Stroke      color.NRGBA
	StrokeNone  bool
	StrokeWidth float32
	// Round selects round line caps and joins.
	Round bool
	// PointerEventsNone marks the element transparent to pointer
	// input.
	PointerEventsNone bool
}

// Rect is an axis aligned filled rectangle.
type Rect struct {
	node
	transformable
	X, Y, Width, Height float32
	Fill                color.NRGBA
}
