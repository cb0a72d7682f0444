package models

import "archipelago.dev/internal/generation"

// Tile describes one tile kind for clients
type Tile struct {
	Character string `json:"char"`
	Color     string `json:"color"`
	Type      string `json:"type"` // water, sand, grass, wood, stone
	Rank      int    `json:"rank"`
	Land      bool   `json:"land"`
}

// TileDefinitions is keyed by tile glyph
type TileDefinitions map[string]Tile

// MapResponse is a generated map as sent to the client
type MapResponse struct {
	Seed            int64              `json:"seed"`
	Width           int                `json:"width"`
	Height          int                `json:"height"`
	Config          generation.Config  `json:"config"`
	Tiles           []string           `json:"tiles"` // one glyph row per y
	TileDefinitions TileDefinitions    `json:"tile_definitions"`
	Summary         generation.Summary `json:"summary"`
}

// ErrorResponse is the body of every non-2xx JSON reply
type ErrorResponse struct {
	Error string `json:"error"`
}
