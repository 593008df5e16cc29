// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"fmt"
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"

	"github.com/burhanyldz/vector-pen/f32"
)

// PathData builds the d attribute of a Path from absolute move,
// line and quadratic curve commands.
type PathData struct {
	buf strings.Builder
}

func (d *PathData) command(op byte, points ...f32.Point) {
	if d.buf.Len() > 0 {
		d.buf.WriteByte(' ')
	}
	d.buf.WriteByte(op)
	for _, p := range points {
		d.buf.WriteByte(' ')
		d.buf.WriteString(FormatFloat(p.X))
		d.buf.WriteByte(' ')
		d.buf.WriteString(FormatFloat(p.Y))
	}
}

// MoveTo starts a new subpath at p.
func (d *PathData) MoveTo(p f32.Point) {
	d.command('M', p)
}

// LineTo continues the path with a straight segment to p.
func (d *PathData) LineTo(p f32.Point) {
	d.command('L', p)
}

// QuadTo continues the path with a quadratic curve through the
// control point ctrl, ending at p.
func (d *PathData) QuadTo(ctrl, p f32.Point) {
	d.command('Q', ctrl, p)
}

// String returns the encoded path data.
func (d *PathData) String() string {
	return d.buf.String()
}

// Command is one decoded path command.
type Command struct {
	// Op is 'M', 'L' or 'Q'.
	Op byte
	// Ctrl is the control point of a 'Q' command.
	Ctrl f32.Point
	// To is the end point of the command.
	To f32.Point
}

// ParsePath decodes the absolute M, L and Q commands produced by
// PathData, so geometry can be recovered from encoded path data.
// It is not a general SVG path parser.
func ParsePath(s string) ([]Command, error) {
	// Lex errors surface as ItemError items below.
	l, _ := gl.Lex("path", s)
	var cmds []Command
	for {
		l.ConsumeWhiteSpace()
		i := l.NextItem()
		switch i.Type {
		case gl.ItemEOS:
			return cmds, nil
		case gl.ItemError:
			return nil, fmt.Errorf("svg: parse path: %s", i.Value)
		case gl.ItemLetter:
			cmd := Command{}
			var err error
			switch i.Value {
			case "M", "L":
				cmd.Op = i.Value[0]
			case "Q":
				cmd.Op = 'Q'
				if cmd.Ctrl, err = parsePoint(l); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("svg: parse path: unsupported command %q", i.Value)
			}
			if cmd.To, err = parsePoint(l); err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
		default:
			return nil, fmt.Errorf("svg: parse path: unexpected %q", i.Value)
		}
	}
}

func parsePoint(l *gl.Lexer) (f32.Point, error) {
	x, err := parseNumber(l)
	if err != nil {
		return f32.Point{}, err
	}
	y, err := parseNumber(l)
	if err != nil {
		return f32.Point{}, err
	}
	return f32.Point{X: x, Y: y}, nil
}

func parseNumber(l *gl.Lexer) (float32, error) {
	l.ConsumeWhiteSpace()
	i := l.NextItem()
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("svg: parse path: expected number, got %q", i.Value)
	}
	n, err := strconv.ParseFloat(i.Value, 32)
	if err != nil {
		return 0, fmt.Errorf("svg: parse path: %w", err)
	}
	return float32(n), nil
}
