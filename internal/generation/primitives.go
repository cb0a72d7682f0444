package generation

import (
	"math/rand/v2"
)

// ---- Seeded RNG ----

// MaxSeed is the largest accepted seed (2^31 - 1)
const MaxSeed int64 = 2147483647

// RandomSeed asks Generate to draw a fresh seed
const RandomSeed int64 = -1

// ValidSeed reports whether seed lies in [0, MaxSeed]
func ValidSeed(seed int64) bool {
	return seed >= 0 && seed <= MaxSeed
}

// ResolveSeed returns seed when it is valid and a freshly drawn one otherwise
func ResolveSeed(seed int64) int64 {
	if ValidSeed(seed) {
		return seed
	}
	return rand.Int64N(MaxSeed + 1)
}

// RNG is a seeded random number generator owned by a single generator
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a new RNG with the given seed
func NewRNG(seed int64) *RNG {
	s := uint64(seed)
	return &RNG{r: rand.New(rand.NewPCG(s, s))}
}

// Intn returns a pseudo-random int in [0, n)
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max]
func (r *RNG) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.Intn(max-min+1)
}

// ---- Grid traversal ----

// Components collects 8-connected regions of cells matching keep.
// Cells are visited in row order so output is stable.
func (g *Grid) Components(keep func(TileKind) bool) [][]Point {
	visited := make([][]bool, g.Height)
	for y := range visited {
		visited[y] = make([]bool, g.Width)
	}

	var comps [][]Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if visited[y][x] || !keep(g.Tiles[y][x]) {
				continue
			}
			queue := []Point{{x, y}}
			visited[y][x] = true
			var comp []Point

			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				comp = append(comp, p)

				for _, adj := range p.Surrounding() {
					if !g.InBounds(adj) || visited[adj.Y][adj.X] || !keep(g.Get(adj)) {
						continue
					}
					visited[adj.Y][adj.X] = true
					queue = append(queue, adj)
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// allNeighbors reports whether every 8-neighbor of p is tile.
// Neighbors outside the grid read as Water.
func (g *Grid) allNeighbors(p Point, tile TileKind) bool {
	for _, adj := range p.Surrounding() {
		if g.Get(adj) != tile {
			return false
		}
	}
	return true
}
