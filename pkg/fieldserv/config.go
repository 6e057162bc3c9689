// Package fieldserv serves the coherence field to dashboard clients: latest
// sample and history over HTTP, a live stream over websocket, and a
// Prometheus metrics endpoint.
package fieldserv

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Addr         string `json:"addr"`
	CadenceMS    int    `json:"cadence_ms"`
	StoreDir     string `json:"store_dir"`
	HistoryLimit int    `json:"history_limit"`
	Seed         int64  `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Addr:         ":8090",
		CadenceMS:    1500,
		HistoryLimit: 120,
		Seed:         time.Now().UnixNano(),
	}
}

// Cadence converts the configured millisecond cadence, falling back to the
// default when unset or nonsense.
func (c Config) Cadence() time.Duration {
	if c.CadenceMS <= 0 {
		return 1500 * time.Millisecond
	}
	return time.Duration(c.CadenceMS) * time.Millisecond
}

// LoadConfigFileName pulls a given filename config off local disk.
// Validation is performed on the file before opening.
func LoadConfigFileName(filename string) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(filename)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	if err := validateLoad(file); err != nil {
		slog.Error("Validation failed", slog.Any("Error", err))
		return cfg, err
	}

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		slog.Error("could not decode file")
		return cfg, err
	}
	if cfg.Addr == "" {
		return cfg, fmt.Errorf("config %s: empty addr", filename)
	}
	return cfg, nil
}

func validateLoad(file *os.File) error {
	info, err := file.Stat()
	if err != nil {
		slog.Error("could not stat file")
		return err
	}
	if info.Size() == 0 {
		slog.Error("file is empty")
		return errors.New("file is empty")
	}
	return nil
}
