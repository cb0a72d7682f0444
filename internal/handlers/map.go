package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"archipelago.dev/internal/generation"
	"archipelago.dev/internal/render"
	"archipelago.dev/internal/services"
)

// SeedHeader carries the seed a map was generated from
const SeedHeader = "X-Map-Seed"

// maxDimension caps width and height accepted over HTTP
const maxDimension = 1000

// maxImagePixels caps the rendered image area accepted over HTTP
const maxImagePixels = 4096 * 4096

// MapHandler handles map endpoints
type MapHandler struct {
	mapService *services.MapService
	pixelSize  int
}

// NewMapHandler creates a new MapHandler
func NewMapHandler(ms *services.MapService, pixelSize int) *MapHandler {
	return &MapHandler{mapService: ms, pixelSize: pixelSize}
}

// GetMap handles GET /api/map - returns the map as glyph rows
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	req, err := parseMapRequest(r.URL.Query(), h.mapService.Defaults())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.mapService.Generate(req)
	if err != nil {
		respondGenerateError(w, err)
		return
	}

	setSeedHeaders(w, m.Seed, req.Seed)
	respondJSON(w, http.StatusOK, h.mapService.GetMapResponse(m))
}

// GetMapImage handles GET /api/map.png - returns the map as a PNG
func (h *MapHandler) GetMapImage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := parseMapRequest(query, h.mapService.Defaults())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelSize, err := intParam(query, "pixelSize", h.pixelSize)
	if err == nil && (pixelSize < 1 || pixelSize > render.MaxPixelSize) {
		err = fmt.Errorf("pixelSize must be between 1 and %d", render.MaxPixelSize)
	}
	if err == nil && imagePixels(req.Config, pixelSize) > maxImagePixels {
		err = fmt.Errorf("image of %dx%d tiles at pixelSize %d exceeds %d pixels",
			req.Config.Width, req.Config.Height, pixelSize, maxImagePixels)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.mapService.Generate(req)
	if err != nil {
		respondGenerateError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.mapService.WritePNG(&buf, m, pixelSize); err != nil {
		log.Printf("Error rendering map: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to render map")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	setSeedHeaders(w, m.Seed, req.Seed)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing map image: %v", err)
	}
}

// GetTiles handles GET /api/tiles - returns the tile table
func (h *MapHandler) GetTiles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.mapService.GetTileDefinitions())
}

// setSeedHeaders exposes the seed and lets clients cache maps they
// asked for by seed; random maps are never cached.
func setSeedHeaders(w http.ResponseWriter, seed, requested int64) {
	w.Header().Set(SeedHeader, strconv.FormatInt(seed, 10))
	if generation.ValidSeed(requested) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
}

func respondGenerateError(w http.ResponseWriter, err error) {
	if errors.Is(err, generation.ErrInvalidConfig) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("Error generating map: %v", err)
	respondError(w, http.StatusInternalServerError, "failed to generate map")
}

// parseMapRequest reads seed and generation params, falling back to
// defaults. A seed that is missing, malformed or out of range is not an
// error; it selects a random map.
func parseMapRequest(q url.Values, defaults generation.Config) (services.MapRequest, error) {
	req := services.MapRequest{Seed: generation.RandomSeed, Config: defaults}

	if raw := q.Get("seed"); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil && generation.ValidSeed(seed) {
			req.Seed = seed
		}
	}

	var err error
	fields := []struct {
		name string
		dst  *int
	}{
		{"width", &req.Config.Width},
		{"height", &req.Config.Height},
		{"loops", &req.Config.Loops},
		{"maxGrowth", &req.Config.MaxGrowth},
		{"fallDownRate", &req.Config.FallDownRate},
	}
	for _, f := range fields {
		if *f.dst, err = intParam(q, f.name, *f.dst); err != nil {
			return req, err
		}
	}
	if req.Config.Width > maxDimension || req.Config.Height > maxDimension {
		return req, fmt.Errorf("width and height must not exceed %d", maxDimension)
	}
	// At most one island origin per cell
	if cells := req.Config.Width * req.Config.Height; req.Config.Loops > cells {
		return req, fmt.Errorf("loops must not exceed width*height (%d)", cells)
	}
	return req, nil
}

// imagePixels is the pixel area of a map rendered at pixelSize. Inputs
// are already capped, so the product fits in an int64.
func imagePixels(c generation.Config, pixelSize int) int64 {
	return int64(c.Width) * int64(pixelSize) * int64(c.Height) * int64(pixelSize)
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
