package pdf

import (
	"fmt"
	"strings"
)

type OpKind int

const (
	OpNewPage OpKind = iota
	OpRect
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpNewPage:
		return "page"
	case OpRect:
		return "rect"
	case OpText:
		return "text"
	}
	return fmt.Sprintf("op(%d)", int(k))
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// RGB color, each channel 0-255
type RGB struct {
	R, G, B int
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	Black = RGB{}
	White = RGB{255, 255, 255}
)

// TextStyle is a fully resolved text style
type TextStyle struct {
	Family    string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	Color     RGB
	Align     Align
}

func (s TextStyle) String() string {
	var flags []string
	if s.Bold {
		flags = append(flags, "bold")
	}
	if s.Italic {
		flags = append(flags, "italic")
	}
	if s.Underline {
		flags = append(flags, "underline")
	}
	return fmt.Sprintf("%s %.1f %s %s [%s]", s.Family, s.Size, s.Color, s.Align, strings.Join(flags, ","))
}

// ShapeStyle describes how a rectangle is painted
type ShapeStyle struct {
	Fill      bool
	FillColor RGB
	Stroke    bool
	LineColor RGB
	LineWidth float64
}

func (s ShapeStyle) String() string {
	mode := ""
	if s.Fill {
		mode += "F"
	}
	if s.Stroke {
		mode += "D"
	}
	return fmt.Sprintf("%s fill=%s line=%s/%.2f", mode, s.FillColor, s.LineColor, s.LineWidth)
}

// Op is one positional drawing operation. Ops are values so two op sequences
// can be compared directly.
//
// For OpText, X/Y/W/H is the clip box: text is vertically centered in it and
// anything beyond W is clipped, never wrapped.
type Op struct {
	Kind  OpKind
	Page  int
	X, Y  float64
	W, H  float64
	Text  string
	Font  TextStyle
	Shape ShapeStyle
}

func (o Op) String() string {
	switch o.Kind {
	case OpNewPage:
		return fmt.Sprintf("page %d", o.Page)
	case OpRect:
		return fmt.Sprintf("rect p%d %.2f,%.2f %.2fx%.2f %s", o.Page, o.X, o.Y, o.W, o.H, o.Shape)
	case OpText:
		return fmt.Sprintf("text p%d %.2f,%.2f %.2fx%.2f %q %s", o.Page, o.X, o.Y, o.W, o.H, o.Text, o.Font)
	}
	return o.Kind.String()
}
