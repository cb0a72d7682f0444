package generation

// Generator grows an archipelago on a fixed-size grid.
// A Generator is not safe for concurrent use; build one per goroutine.
type Generator struct {
	config Config
	grid   *Grid
	rng    *RNG
	land   Bounds
	seed   int64
}

// growStep is one pending call of the growth walk
type growStep struct {
	from    Point
	tile    TileKind
	dir     Direction
	counter int
}

// NewGenerator validates config and returns a generator with an all-Water grid
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		config: config,
		grid:   NewGrid(config.Width, config.Height),
		land:   config.landBounds(),
		seed:   RandomSeed,
	}, nil
}

// Config returns the generator's parameters
func (gen *Generator) Config() Config {
	return gen.config
}

// Seed returns the seed used by the last Generate call, or RandomSeed
// if Generate has not run yet.
func (gen *Generator) Seed() int64 {
	return gen.seed
}

// Grid returns a copy of the current grid
func (gen *Generator) Grid() *Grid {
	return gen.grid.Clone()
}

// Generate builds a new map and returns the seed it used. Seeds outside
// [0, MaxSeed] are replaced by a random one.
func (gen *Generator) Generate(seed int64) int64 {
	gen.seed = ResolveSeed(seed)
	gen.rng = NewRNG(gen.seed)
	gen.grid.Fill(Water)

	// 1. Seed and grow the islands
	for i := gen.config.Loops; i > 0; i-- {
		gen.generateIsland()
	}

	// 2. Leftover shoreline sand becomes interior grass
	gen.normalizeSand()

	// 3. Drop one-tile specks
	gen.removeSingles()

	// 4. Ring all land with sand
	gen.growSandBorder()

	return gen.seed
}

func (gen *Generator) generateIsland() {
	x := gen.rng.IntRange(gen.land.MinX, gen.land.MaxX)
	y := gen.rng.IntRange(gen.land.MinY, gen.land.MaxY)
	origin := Point{x, y}
	gen.grid.Set(origin, Stone)
	gen.grow(origin, Stone, North, 1)
}

// grow performs a depth-first walk from pos. Each claimed cell erodes
// independently and, while still land, branches north, east, south and
// west. The explicit stack visits cells in the same order as direct
// recursion would, so random draws are consumed identically.
func (gen *Generator) grow(pos Point, tile TileKind, dir Direction, counter int) {
	stack := []growStep{{from: pos, tile: tile, dir: dir, counter: counter}}

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if step.counter > gen.config.MaxGrowth {
			continue
		}

		next := step.from.Step(step.dir)
		if !gen.land.Contains(next) || gen.grid.Get(next) != Water {
			continue
		}

		newTile := gen.erode(step.tile)
		gen.grid.Set(next, newTile)
		if newTile <= Sand {
			continue
		}

		// Push in reverse so North is popped first
		for i := len(growthOrder) - 1; i >= 0; i-- {
			stack = append(stack, growStep{
				from:    next,
				tile:    newTile,
				dir:     growthOrder[i],
				counter: step.counter + 1,
			})
		}
	}
}

// erode draws against the fall down rate and drops the tile one rank
// for every draw that lands inside it. Water maps to itself and keeps
// drawing until a draw misses; at a rate of 100 no draw can miss, so
// Water returns without one.
func (gen *Generator) erode(tile TileKind) TileKind {
	for {
		if tile == Water && gen.config.FallDownRate >= 100 {
			return Water
		}
		if gen.rng.IntRange(1, 100) > gen.config.FallDownRate {
			return tile
		}
		tile = tile.Lower()
	}
}
