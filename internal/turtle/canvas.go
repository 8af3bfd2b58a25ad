package turtle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"

	"glogo/internal/errs"
)

const paletteSize = 16

// Well-known palette indexes.
const (
	ColorBlack int32 = 0
	ColorWhite int32 = 7
)

type rgb struct {
	r, g, b uint8
}

// palette is the fixed 16-color pen palette, index 0 through 15.
var palette = [paletteSize]rgb{
	{0, 0, 0},       // black
	{0, 0, 255},     // blue
	{0, 255, 0},     // green
	{0, 255, 255},   // cyan
	{255, 0, 0},     // red
	{255, 0, 255},   // magenta
	{255, 255, 0},   // yellow
	{255, 255, 255}, // white
	{165, 42, 42},   // brown
	{210, 180, 140}, // tan
	{34, 139, 34},   // forest
	{127, 255, 212}, // aqua
	{250, 128, 114}, // salmon
	{128, 0, 128},   // purple
	{255, 165, 0},   // orange
	{128, 128, 128}, // grey
}

type segment struct {
	x1, y1 int32
	x2, y2 int32
	color  int32
}

// Canvas records the line segments drawn during a run and encodes them to
// SVG or PNG on save. The background is black.
type Canvas struct {
	width    int
	height   int
	segments []segment
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

func (c *Canvas) Line(x1, y1, x2, y2, color int32) {
	c.segments = append(c.segments, segment{x1: x1, y1: y1, x2: x2, y2: y2, color: color})
}

func (c *Canvas) Width() int    { return c.width }
func (c *Canvas) Height() int   { return c.height }
func (c *Canvas) Segments() int { return len(c.segments) }

// Save dispatches on the file extension. Unsupported extensions are an
// ImageSaveError.
func (c *Canvas) Save(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return c.saveSVG(path)
	case ".png":
		return c.savePNG(path)
	default:
		return &errs.ImageSaveError{Message: fmt.Sprintf("file extension not supported: %q", path)}
	}
}

func (c *Canvas) saveSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &errs.ImageSaveError{Message: err.Error()}
	}
	defer f.Close()

	s := svg.New(f)
	s.Start(c.width, c.height)
	s.Rect(0, 0, c.width, c.height, "fill:black")
	for _, seg := range c.segments {
		col := palette[seg.color]
		style := fmt.Sprintf("stroke:#%02x%02x%02x;stroke-width:1", col.r, col.g, col.b)
		s.Line(int(seg.x1), int(seg.y1), int(seg.x2), int(seg.y2), style)
	}
	s.End()

	if err := f.Close(); err != nil {
		return &errs.ImageSaveError{Message: err.Error()}
	}
	return nil
}

func (c *Canvas) savePNG(path string) error {
	dc := gg.NewContext(c.width, c.height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetLineWidth(1)
	for _, seg := range c.segments {
		col := palette[seg.color]
		dc.SetRGB255(int(col.r), int(col.g), int(col.b))
		dc.DrawLine(float64(seg.x1), float64(seg.y1), float64(seg.x2), float64(seg.y2))
		dc.Stroke()
	}
	if err := dc.SavePNG(path); err != nil {
		return &errs.ImageSaveError{Message: err.Error()}
	}
	return nil
}
