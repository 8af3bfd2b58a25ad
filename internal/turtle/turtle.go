package turtle

import (
	"log/slog"
	"math"
	"strconv"

	"glogo/internal/errs"
)

// Turtle is the cursor the evaluator drives: an integer position, a heading
// in degrees (0 = up, clockwise, unbounded), a pen state and a palette color
// index. Movement while the pen is down records a line on the canvas.
type Turtle struct {
	x       int32
	y       int32
	heading int32
	penDown bool
	color   int32
	canvas  *Canvas
}

// New places the turtle at the canvas center, heading 0, pen up, pen color
// white (palette index 7).
func New(width, height int) *Turtle {
	return &Turtle{
		x:      int32(width / 2),
		y:      int32(height / 2),
		color:  ColorWhite,
		canvas: NewCanvas(width, height),
	}
}

func (t *Turtle) PenUp()   { t.penDown = false }
func (t *Turtle) PenDown() { t.penDown = true }

// Forward moves along the current heading. A negative magnitude redirects to
// Back with the sign flipped.
func (t *Turtle) Forward(numPixels int32) error {
	if numPixels < 0 {
		return t.Back(-numPixels)
	}
	return t.move(numPixels, t.heading)
}

func (t *Turtle) Back(numPixels int32) error {
	if numPixels < 0 {
		return t.Forward(-numPixels)
	}
	return t.move(numPixels, t.heading+180)
}

func (t *Turtle) Left(numPixels int32) error {
	if numPixels < 0 {
		return t.Right(-numPixels)
	}
	return t.move(numPixels, t.heading-90)
}

// Right keeps the negative magnitude when it delegates to Left, so
// RIGHT -n bounces back through Left and lands on Right n. The asymmetry
// against the other three primitives is long-standing observed behavior and
// is pinned by tests.
func (t *Turtle) Right(numPixels int32) error {
	if numPixels < 0 {
		return t.Left(numPixels)
	}
	return t.move(numPixels, t.heading+90)
}

func (t *Turtle) SetPenColor(code int32) error {
	if code < 0 || code >= paletteSize {
		return &errs.InvalidArgumentError{
			Command:  "SETPENCOLOR",
			Argument: strconv.FormatInt(int64(code), 10),
			Expected: "an integer between 0 and 15",
		}
	}
	t.color = code
	return nil
}

func (t *Turtle) Turn(degrees int32)       { t.heading += degrees }
func (t *Turtle) SetHeading(degrees int32) { t.heading = degrees }
func (t *Turtle) SetX(position int32)      { t.x = position }
func (t *Turtle) SetY(position int32)      { t.y = position }

func (t *Turtle) X() int32        { return t.x }
func (t *Turtle) Y() int32        { return t.y }
func (t *Turtle) Heading() int32  { return t.heading }
func (t *Turtle) PenColor() int32 { return t.color }
func (t *Turtle) IsPenDown() bool { return t.penDown }

// Canvas exposes the recorded drawing, mainly for tests and the REPL.
func (t *Turtle) Canvas() *Canvas { return t.canvas }

// SaveImage encodes the canvas, dispatching on the path's extension
// (.svg or .png).
func (t *Turtle) SaveImage(path string) error {
	return t.canvas.Save(path)
}

func (t *Turtle) move(numPixels, direction int32) error {
	ex, ey := endCoordinates(t.x, t.y, direction, numPixels)
	if t.penDown {
		t.canvas.Line(t.x, t.y, ex, ey, t.color)
	}
	slog.Debug("turtle move",
		slog.Int("from_x", int(t.x)), slog.Int("from_y", int(t.y)),
		slog.Int("to_x", int(ex)), slog.Int("to_y", int(ey)),
		slog.Int("direction", int(direction)),
		slog.Bool("pen_down", t.penDown))
	t.x = ex
	t.y = ey
	return nil
}

// endCoordinates quantizes the landing point of a move of length n from
// (x, y) toward direction degrees, with 0 pointing up and y growing
// downward.
func endCoordinates(x, y, direction, n int32) (int32, int32) {
	rad := float64(direction) * math.Pi / 180
	ex := x + int32(math.Round(float64(n)*math.Sin(rad)))
	ey := y - int32(math.Round(float64(n)*math.Cos(rad)))
	return ex, ey
}
