// Package grid draws trajectories on a fixed-size character surface.
package grid

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// Blank is the character of an untouched cell.
	Blank = ' '
	// Trace marks an ordinary sample.
	Trace = 'O'
	// Entry marks the cell of a sample that entered the basket.
	Entry = '*'
	// EntryWing marks the cells around an entry, to make it stand out.
	EntryWing = '='

	entryWingSpan = 2
)

// ErrOutOfBounds is returned for coordinates that fall outside the surface.
var ErrOutOfBounds = errors.New("coordinate out of grid bounds")

// Grid is a rows x cols character surface covering rowsMeters x colsMeters of
// physical space. Row 0 is the floor.
type Grid struct {
	buf        []rune
	numRows    int
	numCols    int
	rowsMeters float64
	colsMeters float64
}

// New creates a blank grid.
func New(numRows, numCols int, rowsMeters, colsMeters float64) (*Grid, error) {
	if numRows < 1 || numCols < 1 {
		return nil, fmt.Errorf("grid size must be positive, got %dx%d", numRows, numCols)
	}
	if !(rowsMeters > 0) || !(colsMeters > 0) {
		return nil, fmt.Errorf("grid extent must be positive, got %vx%v m", rowsMeters, colsMeters)
	}
	buf := make([]rune, numRows*numCols)
	for i := range buf {
		buf[i] = Blank
	}
	return &Grid{
		buf:        buf,
		numRows:    numRows,
		numCols:    numCols,
		rowsMeters: rowsMeters,
		colsMeters: colsMeters,
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.numRows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.numCols }

// Cell maps a physical position in meters to its cell.
func (g *Grid) Cell(xMeters, yMeters float64) (row, col int, err error) {
	if !(xMeters >= 0 && xMeters <= g.colsMeters) || !(yMeters >= 0 && yMeters <= g.rowsMeters) {
		return 0, 0, fmt.Errorf("%w: (%.2f, %.2f) m outside %.2fx%.2f m",
			ErrOutOfBounds, xMeters, yMeters, g.colsMeters, g.rowsMeters)
	}
	row = int(math.Round(yMeters * float64(g.numRows-1) / g.rowsMeters))
	col = int(math.Round(xMeters * float64(g.numCols-1) / g.colsMeters))
	return row, col, nil
}

// Set writes ch at the given cell.
func (g *Grid) Set(ch rune, row, col int) error {
	if !g.inside(row, col) {
		return fmt.Errorf("%w: cell (%d, %d) outside %dx%d", ErrOutOfBounds, row, col, g.numRows, g.numCols)
	}
	g.buf[row*g.numCols+col] = ch
	return nil
}

// At returns the character at the given cell, or Blank outside the surface.
func (g *Grid) At(row, col int) rune {
	if !g.inside(row, col) {
		return Blank
	}
	return g.buf[row*g.numCols+col]
}

// PlotMeters marks the cell of a physical position. Entered positions get an
// Entry with EntryWing on the two cells at each side; wings that fall off the
// surface are clipped.
func (g *Grid) PlotMeters(xMeters, yMeters float64, entered bool) error {
	row, col, err := g.Cell(xMeters, yMeters)
	if err != nil {
		return err
	}
	if !entered {
		return g.Set(Trace, row, col)
	}
	for d := -entryWingSpan; d <= entryWingSpan; d++ {
		if d == 0 || !g.inside(row, col+d) {
			continue
		}
		g.buf[row*g.numCols+col+d] = EntryWing
	}
	return g.Set(Entry, row, col)
}

// WriteTo prints the grid with the highest row first, so the floor is the
// last line.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	var total int64
	line := make([]byte, 0, g.numCols*utf8.UTFMax+1)
	for row := g.numRows - 1; row >= 0; row-- {
		line = line[:0]
		for col := 0; col < g.numCols; col++ {
			line = utf8.AppendRune(line, g.buf[row*g.numCols+col])
		}
		line = append(line, '\n')
		n, err := w.Write(line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String renders the grid as WriteTo does.
func (g *Grid) String() string {
	var b strings.Builder
	_, _ = g.WriteTo(&b)
	return b.String()
}

func (g *Grid) inside(row, col int) bool {
	return row >= 0 && row < g.numRows && col >= 0 && col < g.numCols
}
