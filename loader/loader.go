// Package loader reads trade event batches exported by the upstream import
// layer. One file is one batch; the engine sorts, so file order is free.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rustyeddy/tradebook/trade"
)

// ReadEvents decodes a JSON array of trade events.
func ReadEvents(r io.Reader) ([]trade.Event, error) {
	var events []trade.Event

	dec := json.NewDecoder(r)
	if err := dec.Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// LoadFile reads a trade event batch from a JSON file.
func LoadFile(path string) ([]trade.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	events, err := ReadEvents(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("loaded events", "path", path, "count", len(events))
	return events, nil
}
