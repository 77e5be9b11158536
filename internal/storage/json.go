package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"tlaunch/internal/domain"
)

// Save upserts the launch into the configured JSON output file.
func (s *JSONStorage) Save(result *domain.LaunchResult) error {
	output, err := s.Load()
	if errors.Is(err, fs.ErrNotExist) {
		output = &domain.ResultsOutput{}
	} else if err != nil {
		return err
	}

	replaced := false
	for i := range output.Launches {
		if output.Launches[i].Binary == result.Binary {
			output.Launches[i] = *result
			replaced = true
			break
		}
	}
	if !replaced {
		output.Launches = append(output.Launches, *result)
	}

	output.Recompute(time.Now())
	return s.SaveOutput(output)
}

// Load reads the stored results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.ResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.ResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.ResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
