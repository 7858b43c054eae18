// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// HarvestFile is the on-disk representation of a harvest and its
// parameters. A completed harvest can be saved and reloaded later
// without re-querying the endpoint.
type HarvestFile struct {
	Params  HarvestParams  `yaml:"params"`
	Records []types.Record `yaml:"records"`
	Summary HarvestSummary `yaml:"summary"`
}

// HarvestParams stores the harvest parameters in a serializable form.
type HarvestParams struct {
	Category string `yaml:"category"`
	From     string `yaml:"from,omitempty"`
	Until    string `yaml:"until,omitempty"`
	Filter   Filter `yaml:"filter,omitempty"`
}

// HarvestSummary stores result statistics and a timestamp.
type HarvestSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteHarvestFile saves harvest parameters and records to a YAML file.
func WriteHarvestFile(path string, opts Options, records []types.Record) error {
	hf := HarvestFile{
		Params: HarvestParams{
			Category: opts.Category,
			From:     opts.From,
			Until:    opts.Until,
			Filter:   opts.Filter,
		},
		Records: records,
		Summary: HarvestSummary{
			Total:     len(records),
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&hf)
	if err != nil {
		return fmt.Errorf("marshaling harvest file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadHarvestFile loads a previously saved harvest file from disk.
func ReadHarvestFile(path string) (*HarvestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading harvest file: %w", err)
	}
	var hf HarvestFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("parsing harvest file: %w", err)
	}
	return &hf, nil
}
