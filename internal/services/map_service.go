package services

import (
	"fmt"
	"io"
	"sync"

	"archipelago.dev/internal/generation"
	"archipelago.dev/internal/models"
	"archipelago.dev/internal/render"
)

// MapRequest selects a map. Seed may be generation.RandomSeed.
type MapRequest struct {
	Seed   int64
	Config generation.Config
}

// Map is a finished, read-only map
type Map struct {
	Seed    int64
	Config  generation.Config
	Grid    *generation.Grid
	Summary generation.Summary
}

type cacheKey struct {
	seed   int64
	config generation.Config
}

// MapService generates maps and keeps the most recent ones in memory
type MapService struct {
	defaults  generation.Config
	cacheSize int

	mu    sync.Mutex
	cache map[cacheKey]*Map
	order []cacheKey // oldest first
}

// NewMapService creates a new MapService. A cacheSize of 0 disables caching.
func NewMapService(defaults generation.Config, cacheSize int) *MapService {
	return &MapService{
		defaults:  defaults,
		cacheSize: cacheSize,
		cache:     make(map[cacheKey]*Map),
	}
}

// Defaults returns the generation config used when a request leaves fields unset
func (s *MapService) Defaults() generation.Config {
	return s.defaults
}

// Generate returns the map for req, from cache when the same seed and
// config were generated recently.
func (s *MapService) Generate(req MapRequest) (*Map, error) {
	if generation.ValidSeed(req.Seed) {
		if m, ok := s.lookup(cacheKey{req.Seed, req.Config}); ok {
			return m, nil
		}
	}

	gen, err := generation.NewGenerator(req.Config)
	if err != nil {
		return nil, err
	}
	seed := gen.Generate(req.Seed)

	m := &Map{
		Seed:    seed,
		Config:  req.Config,
		Grid:    gen.Grid(),
		Summary: gen.Summary(),
	}
	s.store(cacheKey{seed, req.Config}, m)
	return m, nil
}

func (s *MapService) lookup(key cacheKey) (*Map, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cache[key]
	return m, ok
}

func (s *MapService) store(key cacheKey, m *Map) {
	if s.cacheSize <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cache[key]; exists {
		return
	}
	for len(s.order) >= s.cacheSize {
		delete(s.cache, s.order[0])
		s.order = s.order[1:]
	}
	s.cache[key] = m
	s.order = append(s.order, key)
}

// Cached returns how many maps are held in memory
func (s *MapService) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// GetTileDefinitions returns the tile table keyed by glyph
func (s *MapService) GetTileDefinitions() models.TileDefinitions {
	defs := make(models.TileDefinitions, len(generation.AllTiles))
	for _, kind := range generation.AllTiles {
		glyph := string(kind.Glyph())
		defs[glyph] = models.Tile{
			Character: glyph,
			Color:     render.HexColor(kind),
			Type:      kind.String(),
			Rank:      int(kind),
			Land:      kind.IsLand(),
		}
	}
	return defs
}

// GetMapResponse converts a map for the JSON API
func (s *MapService) GetMapResponse(m *Map) *models.MapResponse {
	return &models.MapResponse{
		Seed:            m.Seed,
		Width:           m.Grid.Width,
		Height:          m.Grid.Height,
		Config:          m.Config,
		Tiles:           m.Grid.Rows(),
		TileDefinitions: s.GetTileDefinitions(),
		Summary:         m.Summary,
	}
}

// WritePNG renders m to w
func (s *MapService) WritePNG(w io.Writer, m *Map, pixelSize int) error {
	if err := render.EncodePNG(w, m.Grid, pixelSize); err != nil {
		return fmt.Errorf("rendering map %d: %w", m.Seed, err)
	}
	return nil
}
