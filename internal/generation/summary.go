package generation

// Summary describes a finished map
type Summary struct {
	Counts        map[string]int `json:"counts"`
	LandCells     int            `json:"land_cells"`
	Islands       int            `json:"islands"`
	LargestIsland int            `json:"largest_island"`
}

// Summarize counts tiles and islands on g. An island is an 8-connected
// group of non-Water cells, sand ring included.
func Summarize(g *Grid) Summary {
	s := Summary{Counts: make(map[string]int, len(AllTiles))}
	for _, kind := range AllTiles {
		s.Counts[kind.String()] = 0
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			tile := g.Tiles[y][x]
			s.Counts[tile.String()]++
			if tile.IsLand() {
				s.LandCells++
			}
		}
	}

	islands := g.Components(func(t TileKind) bool { return t != Water })
	s.Islands = len(islands)
	for _, isl := range islands {
		s.LargestIsland = max(s.LargestIsland, len(isl))
	}
	return s
}

// Summary reports on the generator's current grid
func (gen *Generator) Summary() Summary {
	return Summarize(gen.grid)
}
