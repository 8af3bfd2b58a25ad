package turtle

import (
	"errors"
	"testing"

	"glogo/internal/errs"
)

func TestNewPlacesTurtleAtCenter(t *testing.T) {
	tr := New(200, 100)
	if tr.X() != 100 || tr.Y() != 50 {
		t.Errorf("expected position (100, 50), got (%d, %d)", tr.X(), tr.Y())
	}
	if tr.Heading() != 0 {
		t.Errorf("expected heading 0, got %d", tr.Heading())
	}
	if tr.IsPenDown() {
		t.Error("expected pen up")
	}
	if tr.PenColor() != ColorWhite {
		t.Errorf("expected pen color %d, got %d", ColorWhite, tr.PenColor())
	}
}

func TestMovement(t *testing.T) {
	cases := []struct {
		name            string
		moves           func(tr *Turtle) error
		expectedX       int32
		expectedY       int32
		expectedHeading int32
	}{
		{
			"forward moves up",
			func(tr *Turtle) error { return tr.Forward(10) },
			100, 90, 0,
		},
		{
			"back moves down",
			func(tr *Turtle) error { return tr.Back(10) },
			100, 110, 0,
		},
		{
			"left strafes without turning",
			func(tr *Turtle) error { return tr.Left(10) },
			90, 100, 0,
		},
		{
			"right strafes without turning",
			func(tr *Turtle) error { return tr.Right(10) },
			110, 100, 0,
		},
		{
			"forward respects heading",
			func(tr *Turtle) error {
				tr.SetHeading(90)
				return tr.Forward(10)
			},
			110, 100, 90,
		},
		{
			"turn accumulates",
			func(tr *Turtle) error {
				tr.Turn(90)
				tr.Turn(90)
				return tr.Forward(10)
			},
			100, 110, 180,
		},
		{
			"diagonal rounds each axis",
			func(tr *Turtle) error {
				tr.SetHeading(45)
				return tr.Forward(10)
			},
			107, 93, 45,
		},
		{
			"negative forward is back",
			func(tr *Turtle) error { return tr.Forward(-10) },
			100, 110, 0,
		},
		{
			"negative back is forward",
			func(tr *Turtle) error { return tr.Back(-10) },
			100, 90, 0,
		},
		{
			"negative left is right",
			func(tr *Turtle) error { return tr.Left(-10) },
			110, 100, 0,
		},
		{
			"negative right is also right",
			func(tr *Turtle) error { return tr.Right(-10) },
			110, 100, 0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := New(200, 200)
			if err := c.moves(tr); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.X() != c.expectedX || tr.Y() != c.expectedY {
				t.Errorf("expected position (%d, %d), got (%d, %d)",
					c.expectedX, c.expectedY, tr.X(), tr.Y())
			}
			if tr.Heading() != c.expectedHeading {
				t.Errorf("expected heading %d, got %d", c.expectedHeading, tr.Heading())
			}
		})
	}
}

func TestPenControlsDrawing(t *testing.T) {
	tr := New(200, 200)

	if err := tr.Forward(10); err != nil {
		t.Fatal(err)
	}
	if tr.Canvas().Segments() != 0 {
		t.Fatalf("expected no segments with the pen up, got %d", tr.Canvas().Segments())
	}

	tr.PenDown()
	if err := tr.Forward(10); err != nil {
		t.Fatal(err)
	}
	if tr.Canvas().Segments() != 1 {
		t.Fatalf("expected 1 segment with the pen down, got %d", tr.Canvas().Segments())
	}

	tr.PenUp()
	if err := tr.Back(10); err != nil {
		t.Fatal(err)
	}
	if tr.Canvas().Segments() != 1 {
		t.Errorf("expected the pen up move to leave no trace, got %d segments", tr.Canvas().Segments())
	}
}

func TestSetPenColor(t *testing.T) {
	tr := New(200, 200)

	for _, code := range []int32{0, 7, 15} {
		if err := tr.SetPenColor(code); err != nil {
			t.Errorf("expected code %d to be accepted, got %v", code, err)
		}
	}

	for _, code := range []int32{-1, 16, 100} {
		err := tr.SetPenColor(code)
		var argErr *errs.InvalidArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("expected code %d to be rejected, got %v", code, err)
		}
	}
}
