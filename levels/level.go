package levels

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/common"
	"gopkg.in/yaml.v3"
)

// Tile characters used in level rows.
const (
	TileEmpty   = '.'
	TileSolid   = '#'
	TileLedge   = '='
	TileBarrier = '|'
	TileSpike   = '^'
	TileSpawn   = 'S'
	TileCrumble = '~'
	TileRefill  = '*'
	TileSpring  = 'B'
)

var (
	ErrEmptyLevel = errors.New("levels: no rows")
	ErrRaggedRows = errors.New("levels: rows differ in width")
	ErrBadTile    = errors.New("levels: unknown tile")
	ErrSpawn      = errors.New("levels: level needs exactly one spawn")
)

// Level is a tile map in world units, one unit per tile. Rows are written
// top row first; tile (0, 0) is the bottom-left corner and Y grows upward.
type Level struct {
	Name           string     `yaml:"name"`
	Gravity        float64    `yaml:"gravity"`
	TransitionTime float64    `yaml:"transition_time"`
	Rows           []string   `yaml:"rows"`
	Rooms          []Room     `yaml:"rooms"`
	Platforms      []Platform `yaml:"platforms"`

	Width  int       `yaml:"-"`
	Height int       `yaml:"-"`
	Spawn  cp.Vector `yaml:"-"`
}

// Room is a camera region in tile coordinates.
type Room struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	W    int    `yaml:"w"`
	H    int    `yaml:"h"`
}

func (r Room) Bounds() cp.BB {
	return cp.BB{L: float64(r.X), B: float64(r.Y), R: float64(r.X + r.W), T: float64(r.Y + r.H)}
}

// Contains reports whether p lies in the room, left and bottom edges
// inclusive.
func (r Room) Contains(p cp.Vector) bool {
	bb := r.Bounds()
	return p.X >= bb.L && p.X < bb.R && p.Y >= bb.B && p.Y < bb.T
}

// Platform is a moving platform that travels From→To and back.
type Platform struct {
	Name  string    `yaml:"name"`
	From  cp.Vector `yaml:"from"`
	To    cp.Vector `yaml:"to"`
	Size  cp.Vector `yaml:"size"`
	Speed float64   `yaml:"speed"`
	Pause float64   `yaml:"pause"`
}

// Parse decodes a YAML level and fills in the derived fields.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.index(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) index() error {
	if len(l.Rows) == 0 {
		return ErrEmptyLevel
	}
	l.Height = len(l.Rows)
	l.Width = len(l.Rows[0])

	spawns := 0
	for row, line := range l.Rows {
		if len(line) != l.Width {
			return fmt.Errorf("%w: row %d has %d tiles, want %d", ErrRaggedRows, row, len(line), l.Width)
		}
		for x := 0; x < len(line); x++ {
			switch line[x] {
			case TileEmpty, TileSolid, TileLedge, TileBarrier, TileSpike, TileCrumble, TileRefill, TileSpring:
			case TileSpawn:
				spawns++
				y := l.Height - 1 - row
				l.Spawn = cp.Vector{X: float64(x) + 0.5, Y: float64(y)}
			default:
				return fmt.Errorf("%w %q at row %d column %d", ErrBadTile, line[x], row, x)
			}
		}
	}
	if spawns != 1 {
		return fmt.Errorf("%w, found %d", ErrSpawn, spawns)
	}

	if l.Gravity == 0 {
		l.Gravity = common.Gravity
	}
	if l.TransitionTime == 0 {
		l.TransitionTime = 0.4
	}
	if len(l.Rooms) == 0 {
		l.Rooms = []Room{{Name: "main", W: l.Width, H: l.Height}}
	}
	return nil
}

// At returns the tile at column x and row y counted from the bottom. Tiles
// outside the map read as empty.
func (l *Level) At(x, y int) byte {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return TileEmpty
	}
	return l.Rows[l.Height-1-y][x]
}

// Bounds is the whole map in world units.
func (l *Level) Bounds() cp.BB {
	return cp.BB{R: float64(l.Width), T: float64(l.Height)}
}

// RoomAt returns the index of the first room containing p.
func (l *Level) RoomAt(p cp.Vector) (int, bool) {
	for i, r := range l.Rooms {
		if r.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Find returns the centre of every tile of kind tile.
func (l *Level) Find(tile byte) []cp.Vector {
	var out []cp.Vector
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.At(x, y) == tile {
				out = append(out, cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			}
		}
	}
	return out
}

// Runs returns one box per horizontal run of tile.
func (l *Level) Runs(tile byte) []cp.BB {
	var out []cp.BB
	for y := 0; y < l.Height; y++ {
		start := -1
		for x := 0; x <= l.Width; x++ {
			if x < l.Width && l.At(x, y) == tile {
				if start < 0 {
					start = x
				}
				continue
			}
			if start >= 0 {
				out = append(out, cp.BB{L: float64(start), B: float64(y), R: float64(x), T: float64(y + 1)})
				start = -1
			}
		}
	}
	return out
}
