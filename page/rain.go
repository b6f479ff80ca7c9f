package page

import (
	"errors"
	"image"
	"math/rand/v2"

	"github.com/BeatGlow/pager/draw"
	"github.com/BeatGlow/pager/pixel"
)

// Glyph cell size of the digital rain, in pixels.
const (
	RainGlyphWidth  = 8
	RainGlyphHeight = 9
)

// DefaultRainWorkers is the number of drops falling at most at the same time.
const DefaultRainWorkers = 8

// ErrRainGrid is returned for grids the rain cannot animate.
var ErrRainGrid = errors.New("page: digital rain needs at least 1 column, 6 rows and 6 workers")

// RainGrid returns how many glyph columns and rows fit in bounds.
func RainGrid(bounds image.Rectangle) (columns, rows int) {
	return bounds.Dx() / RainGlyphWidth, bounds.Dy() / RainGlyphHeight
}

type rainMode uint8

const (
	rainDone rainMode = iota
	rainAdding
	rainRemoving
)

// rainWorker lays down a drop of length glyphs in one column, one glyph per step, then removes
// it again the same way.
type rainWorker struct {
	column int
	row    int
	length int
	index  int
	mode   rainMode
}

// DigitalRain animates drops of 2×3 dot glyphs running down the display. Workers picked at random
// each frame add or remove one glyph of their drop, or start a new drop in a free column. The
// animation starts from an empty screen every time the page is activated.
type DigitalRain struct {
	columns int
	rows    int
	cells   []uint8
	busy    []bool
	workers []rainWorker
	rand    *rand.Rand
}

// NewDigitalRain returns a rain of columns×rows glyphs animated by workers drops, with its random
// sequence seeded by seed.
func NewDigitalRain(columns, rows, workers int, seed uint64) (*DigitalRain, error) {
	if columns < 1 || rows < 6 || workers < 6 {
		return nil, ErrRainGrid
	}
	return &DigitalRain{
		columns: columns,
		rows:    rows,
		cells:   make([]uint8, columns*rows),
		busy:    make([]bool, columns),
		workers: make([]rainWorker, workers),
		rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (p *DigitalRain) FramesPerSecond() uint8 {
	return 8
}

// Activated clears the rain.
func (p *DigitalRain) Activated() error {
	clear(p.cells)
	clear(p.busy)
	clear(p.workers)
	return nil
}

func (p *DigitalRain) Render(dst draw.Image) error {
	p.step()

	origin := dst.Bounds().Min
	for column := 0; column < p.columns; column++ {
		for row := 0; row < p.rows; row++ {
			if glyph := p.cell(column, row); glyph != 0 {
				at := origin.Add(image.Pt(column*RainGlyphWidth, row*RainGlyphHeight))
				drawRainGlyph(dst, at, glyph)
			}
		}
	}
	return nil
}

func (p *DigitalRain) cell(column, row int) uint8 {
	return p.cells[column*p.rows+row]
}

func (p *DigitalRain) setCell(column, row int, glyph uint8) {
	p.cells[column*p.rows+row] = glyph
}

// step moves a random number of workers on by one glyph.
func (p *DigitalRain) step() {
	n := 2 + p.rand.IntN(len(p.workers)/2-2)
	for range n {
		w := &p.workers[p.rand.IntN(len(p.workers))]
		switch w.mode {
		case rainAdding:
			p.setCell(w.column, w.row+w.index, uint8(1+p.rand.IntN(26)))
			if w.index == w.length-1 {
				w.mode, w.index = rainRemoving, 0
			} else {
				w.index++
			}

		case rainRemoving:
			p.setCell(w.column, w.row+w.index, 0)
			if w.index == w.length-1 {
				p.busy[w.column] = false
				w.mode = rainDone
			} else {
				w.index++
			}

		default:
			column, ok := p.freeColumn()
			if !ok {
				continue
			}
			row := p.rand.IntN(p.rows - 3)
			length := min(max(5+p.rand.IntN(p.rows-5), 3), p.rows-row)
			p.busy[column] = true
			*w = rainWorker{column: column, row: row, length: length, mode: rainAdding}
		}
	}
}

func (p *DigitalRain) freeColumn() (int, bool) {
	free := make([]int, 0, p.columns)
	for column, busy := range p.busy {
		if !busy {
			free = append(free, column)
		}
	}
	if len(free) == 0 {
		return 0, false
	}
	return free[p.rand.IntN(len(free))], true
}

// drawRainGlyph draws glyph as three rows of two 2×2 dots. Each row is one base 3 digit of the
// glyph: 0 lights both dots, 1 the left one, 2 the right one.
func drawRainGlyph(dst draw.Image, at image.Point, glyph uint8) {
	value := glyph % 27
	for row := 0; row < 3; row++ {
		digit := value % 3
		value /= 3

		y := at.Y + 3*row
		if digit != 2 {
			draw.Box(dst, image.Rect(at.X, y, at.X+2, y+2), pixel.On)
		}
		if digit != 1 {
			draw.Box(dst, image.Rect(at.X+3, y, at.X+5, y+2), pixel.On)
		}
	}
}
