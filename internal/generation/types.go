package generation

// Point represents a 2D coordinate
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Step returns the neighboring point in direction d
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// Surrounding returns the 8 neighbors (cardinal and diagonal)
func (p Point) Surrounding() []Point {
	return []Point{
		{p.X + 1, p.Y},
		{p.X - 1, p.Y},
		{p.X, p.Y + 1},
		{p.X, p.Y - 1},
		{p.X + 1, p.Y + 1},
		{p.X + 1, p.Y - 1},
		{p.X - 1, p.Y + 1},
		{p.X - 1, p.Y - 1},
	}
}

// Direction represents cardinal directions
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// growthOrder is the order branches are explored from every grown cell.
var growthOrder = [4]Direction{North, East, South, West}

// Delta returns the x,y offset for moving in this direction.
// y grows northward.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// Bounds represents a rectangular region, inclusive on both ends
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Grid is a 2D tile grid. Tiles is indexed [y][x].
type Grid struct {
	Width, Height int
	Tiles         [][]TileKind
}

// NewGrid creates a new grid filled with Water
func NewGrid(width, height int) *Grid {
	tiles := make([][]TileKind, height)
	for y := 0; y < height; y++ {
		tiles[y] = make([]TileKind, width)
		for x := 0; x < width; x++ {
			tiles[y][x] = Water
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Set sets a tile at a position. Writes outside the grid are dropped.
func (g *Grid) Set(p Point, tile TileKind) {
	if g.InBounds(p) {
		g.Tiles[p.Y][p.X] = tile
	}
}

// Get returns the tile at a position, Water when outside the grid
func (g *Grid) Get(p Point) TileKind {
	if g.InBounds(p) {
		return g.Tiles[p.Y][p.X]
	}
	return Water
}

// At is Get for bare coordinates
func (g *Grid) At(x, y int) TileKind {
	return g.Get(Point{x, y})
}

// Size returns the grid dimensions
func (g *Grid) Size() (width, height int) {
	return g.Width, g.Height
}

// Fill overwrites every cell with tile
func (g *Grid) Fill(tile TileKind) {
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			g.Tiles[y][x] = tile
		}
	}
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	tiles := make([][]TileKind, g.Height)
	for y := range g.Tiles {
		tiles[y] = make([]TileKind, g.Width)
		copy(tiles[y], g.Tiles[y])
	}
	return &Grid{Width: g.Width, Height: g.Height, Tiles: tiles}
}

// Rows renders each row as a string of tile glyphs, y=0 first
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	buf := make([]byte, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			buf[x] = g.Tiles[y][x].Glyph()
		}
		rows[y] = string(buf)
	}
	return rows
}
