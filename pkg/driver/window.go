package driver

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// WindowMax opens the browser maximized
	WindowMax = "max"

	// WindowMin runs the browser headless
	WindowMin = "min"
)

// WindowMode selects how the browser window is presented.
type WindowMode int

const (
	// WindowMaximize starts the window maximized
	WindowMaximize WindowMode = iota

	// WindowHeadless runs without a visible window
	WindowHeadless

	// WindowExplicit resizes the window to Width x Height after launch
	WindowExplicit
)

// WindowSpec is a parsed window size option.
type WindowSpec struct {
	Mode   WindowMode
	Width  int
	Height int
}

// ParseWindowSpec parses "max", "min" or "<width>x<height>" with positive integers.
func ParseWindowSpec(s string) (WindowSpec, error) {
	switch s {
	case WindowMax:
		return WindowSpec{Mode: WindowMaximize}, nil
	case WindowMin:
		return WindowSpec{Mode: WindowHeadless}, nil
	}

	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return WindowSpec{}, fmt.Errorf("%w: window size %q must be 'max', 'min', or 'WIDTHxHEIGHT'", ErrInvalidOption, s)
	}

	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return WindowSpec{}, fmt.Errorf("%w: window size %q must use positive integers", ErrInvalidOption, s)
	}

	return WindowSpec{Mode: WindowExplicit, Width: width, Height: height}, nil
}

// String returns the textual form accepted by ParseWindowSpec.
func (w WindowSpec) String() string {
	switch w.Mode {
	case WindowMaximize:
		return WindowMax
	case WindowHeadless:
		return WindowMin
	default:
		return fmt.Sprintf("%dx%d", w.Width, w.Height)
	}
}

// Position is a screen offset in pixels.
type Position struct {
	X int
	Y int
}
