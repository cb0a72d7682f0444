package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"archipelago.dev/internal/config"
	"archipelago.dev/internal/generation"
	"archipelago.dev/internal/services"
)

var errUsage = errors.New("usage: generate <output-dir> [seed]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run writes <seed>.png and <seed>.json for one map into args[0]
func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	outputDir := args[0]

	seed := generation.RandomSeed
	if len(args) > 1 {
		// Anything that is not a valid seed falls back to a random one
		if s, err := strconv.ParseInt(args[1], 10, 64); err == nil {
			seed = s
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	svc := services.NewMapService(cfg.Map.Config, 0)
	m, err := svc.Generate(services.MapRequest{Seed: seed, Config: cfg.Map.Config})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Generated %dx%d map from seed %d...\n", m.Grid.Width, m.Grid.Height, m.Seed)

	// Write the image
	pngPath := filepath.Join(outputDir, fmt.Sprintf("%d.png", m.Seed))
	f, err := os.Create(pngPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := svc.WritePNG(f, m, cfg.Map.PixelSize); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	// Write the tile rows
	data, err := json.MarshalIndent(svc.GetMapResponse(m), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	jsonPath := filepath.Join(outputDir, fmt.Sprintf("%d.json", m.Seed))
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Fprintf(out, "  Created %s and %s\n", filepath.Base(pngPath), filepath.Base(jsonPath))
	fmt.Fprintf(out, "  %d islands, %d land tiles, largest island %d tiles\n",
		m.Summary.Islands, m.Summary.LandCells, m.Summary.LargestIsland)
	fmt.Fprintln(out, "Done!")
	return nil
}
