package generation

// Beautification passes run in order after growth. Each scans columns
// x=0..width-1 and, within a column, y=0..height-1.

// normalizeSand turns every Sand cell into Grass. During growth Sand
// only marks where a branch stopped; the real shoreline is added by
// growSandBorder.
func (gen *Generator) normalizeSand() {
	g := gen.grid
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Tiles[y][x] == Sand {
				g.Tiles[y][x] = Grass
			}
		}
	}
}

// removeSingles resets every cell whose 8 neighbors are all Water.
func (gen *Generator) removeSingles() {
	g := gen.grid
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			p := Point{x, y}
			if g.allNeighbors(p, Water) {
				g.Tiles[y][x] = Water
			}
		}
	}
}

// growSandBorder converts every Water neighbor of a land cell into Sand.
// The scan is in place; only Water converts, so a cell is never
// rewritten twice.
func (gen *Generator) growSandBorder() {
	g := gen.grid
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if !g.Tiles[y][x].IsLand() {
				continue
			}
			p := Point{x, y}
			for _, adj := range p.Surrounding() {
				if g.InBounds(adj) && g.Get(adj) == Water {
					g.Set(adj, Sand)
				}
			}
		}
	}
}
