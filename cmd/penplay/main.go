// SPDX-License-Identifier: Unlicense OR MIT

/*
The penplay command replays a scripted event scenario through the
pen and zoom engines and prints the resulting markup.

A scenario is a YAML file carrying the surface size, engine options,
optional seed content and a list of timed input steps:

	surface: {width: 800, height: 600}
	pen: {strokeWidth: 3, strokeColor: "#3050ff"}
	zoom: {maxZoom: 2}
	content:
	  - {x: 10, y: 10, width: 100, height: 50, fill: "#d04040"}
	events:
	  - {at: 0, kind: tool, tool: pen}
	  - {at: 10, kind: press, id: 1, source: touch, x: 10, y: 10}
	  - {at: 20, kind: move, id: 1, source: touch, x: 15, y: 10}
	  - {at: 30, kind: release, id: 1, source: touch, x: 15, y: 10}
	  - {at: 40, kind: wheel, x: 100, y: 50, deltaY: -100}

Step times are in milliseconds. See replay for the step kinds.
*/
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	mt "github.com/rustyoz/Mtransform"
	"gopkg.in/yaml.v3"

	vectorpen "github.com/burhanyldz/vector-pen"
	"github.com/burhanyldz/vector-pen/f32"
	"github.com/burhanyldz/vector-pen/io/key"
	"github.com/burhanyldz/vector-pen/io/pointer"
	"github.com/burhanyldz/vector-pen/pen"
	"github.com/burhanyldz/vector-pen/svg"
	"github.com/burhanyldz/vector-pen/zoom"
)

type scenario struct {
	Surface struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"surface"`
	Pen struct {
		StrokeWidth float32 `yaml:"strokeWidth"`
		StrokeColor string  `yaml:"strokeColor"`
		EraserWidth float32 `yaml:"eraserWidth"`
		MinDistance float32 `yaml:"minDistance"`
	} `yaml:"pen"`
	Zoom struct {
		MinZoom             float32 `yaml:"minZoom"`
		MaxZoom             float32 `yaml:"maxZoom"`
		SpeedFactor         float32 `yaml:"speedFactor"`
		AnimationDuration   int     `yaml:"animationDuration"`
		DisablePan          bool    `yaml:"disablePan"`
		DisablePresentation bool    `yaml:"disablePresentation"`
	} `yaml:"zoom"`
	Content []struct {
		X      float32 `yaml:"x"`
		Y      float32 `yaml:"y"`
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
		Fill   string  `yaml:"fill"`
	} `yaml:"content"`
	Events []step `yaml:"events"`
}

// step is one timed input. At is in milliseconds.
type step struct {
	At     int     `yaml:"at"`
	Kind   string  `yaml:"kind"`
	Tool   string  `yaml:"tool"`
	Value  string  `yaml:"value"`
	ID     uint16  `yaml:"id"`
	Source string  `yaml:"source"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	DeltaY float32 `yaml:"deltaY"`
	Name   string  `yaml:"name"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

func main() {
	output := flag.String("o", "", "write markup to file instead of stdout")
	bounds := flag.Bool("bounds", false, "report stroke bounds in drawing and view space")
	verbose := flag.Bool("v", false, "enable engine logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: penplay [flags] scenario.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		vectorpen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	if err := run(flag.Arg(0), *output, *bounds); err != nil {
		fmt.Fprintf(os.Stderr, "penplay: %v\n", err)
		os.Exit(1)
	}
}

func run(path, output string, bounds bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var sc scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	root := svg.NewSVG(sc.Surface.Width, sc.Surface.Height)
	container := svg.NewGroup()
	container.ID = "container"
	root.Append(container)
	for _, c := range sc.Content {
		fill, _ := svg.ParseColor(c.Fill)
		container.Append(&svg.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, Fill: fill})
	}

	penOpts := pen.Options{
		StrokeWidth: sc.Pen.StrokeWidth,
		EraserWidth: sc.Pen.EraserWidth,
		MinDistance: sc.Pen.MinDistance,
	}
	if c, ok := svg.ParseColor(sc.Pen.StrokeColor); ok {
		penOpts.StrokeColor = c
	}
	penEngine := pen.NewEngine(penOpts)
	zoomEngine := zoom.NewEngine(zoom.Options{
		MinZoom:             sc.Zoom.MinZoom,
		MaxZoom:             sc.Zoom.MaxZoom,
		SpeedFactor:         sc.Zoom.SpeedFactor,
		AnimationDuration:   time.Duration(sc.Zoom.AnimationDuration) * time.Millisecond,
		DisablePan:          sc.Zoom.DisablePan,
		DisablePresentation: sc.Zoom.DisablePresentation,
	})
	ph := penEngine.Attach(container)
	zh := zoomEngine.Attach(container)
	penEngine.Resize(ph, sc.Surface.Width, sc.Surface.Height)

	for i, st := range sc.Events {
		if err := replay(penEngine, zoomEngine, ph, zh, st); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, st.Kind, err)
		}
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if _, err := root.WriteTo(out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if bounds {
		reportBounds(os.Stdout, penEngine, zoomEngine, ph, zh)
	}
	return nil
}

// replay feeds one step into the engines. Pointer steps go to both:
// the stroke machine and the gesture machine see the same stream,
// as they would on a shared container.
func replay(pe *pen.Engine, ze *zoom.Engine, ph pen.Handle, zh zoom.Handle, st step) error {
	at := time.Duration(st.At) * time.Millisecond
	switch st.Kind {
	case "tool":
		switch st.Tool {
		case "pen":
			pe.ActivateTool(pen.ToolPen)
		case "eraser":
			pe.ActivateTool(pen.ToolEraser)
		case "none", "":
			pe.DeactivateTool()
		default:
			return fmt.Errorf("unknown tool %q", st.Tool)
		}
	case "color":
		pe.SetColor(st.Value)
	case "strokeWidth":
		pe.SetStrokeWidth(st.Width)
	case "eraserWidth":
		pe.SetEraserWidth(st.Width)
	case "press", "move", "release", "cancel", "leave":
		ev := pointer.Event{
			Kind:      pointerKind(st.Kind),
			PointerID: pointer.ID(st.ID),
			Time:      at,
			Position:  f32.Pt(st.X, st.Y),
		}
		if st.Source != "mouse" {
			ev.Source = pointer.Touch
		} else if st.Kind == "press" {
			ev.Buttons = pointer.ButtonPrimary
		}
		pe.Pointer(ph, ev)
		ze.Pointer(zh, ev)
	case "wheel":
		ze.Pointer(zh, pointer.Event{
			Kind:     pointer.Scroll,
			Time:     at,
			Position: f32.Pt(st.X, st.Y),
			Scroll:   f32.Pt(0, st.DeltaY),
		})
	case "key":
		if st.Name != "escape" {
			return fmt.Errorf("unknown key %q", st.Name)
		}
		ze.Key(key.Event{Name: key.NameEscape, State: key.Press})
	case "frame":
		ze.Frame(at)
	case "resize":
		pe.Resize(ph, st.Width, st.Height)
		ze.Resize(zh)
	case "clear":
		pe.Clear(ph)
	default:
		return fmt.Errorf("unknown step kind %q", st.Kind)
	}
	return nil
}

func pointerKind(kind string) pointer.Kind {
	switch kind {
	case "press":
		return pointer.Press
	case "move":
		return pointer.Move
	case "release":
		return pointer.Release
	case "leave":
		return pointer.Leave
	default:
		return pointer.Cancel
	}
}

// reportBounds prints the bounding box of all committed stroke
// points, in drawing space and pushed through the final view
// transform.
func reportBounds(out *os.File, pe *pen.Engine, ze *zoom.Engine, ph pen.Handle, zh zoom.Handle) {
	recs := pe.Records(ph)
	if len(recs) == 0 {
		fmt.Fprintln(out, "bounds: no strokes")
		return
	}
	box := f32.Rectangle{Min: recs[0].Points[0], Max: recs[0].Points[0]}
	for _, rec := range recs {
		for _, p := range rec.Points {
			box = box.Union(f32.Rectangle{Min: p, Max: p})
		}
	}

	view := mt.Identity()
	scale := ze.Scale(zh)
	off := ze.Offset(zh)
	view.Translate(float64(off.X), float64(off.Y))
	view.Scale(float64(scale), float64(scale))
	x0, y0 := view.Apply(float64(box.Min.X), float64(box.Min.Y))
	x1, y1 := view.Apply(float64(box.Max.X), float64(box.Max.Y))

	fmt.Fprintf(out, "bounds drawing: %v\n", box)
	fmt.Fprintf(out, "bounds view: (%.4g,%.4g)-(%.4g,%.4g)\n", x0, y0, x1, y1)
}
