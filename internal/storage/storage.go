package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/fifa-stats/internal/fifa"
)

// Format selects the on-disk encoding of exported records.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts csv or json in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'csv' or 'json')", s)
	}
}

// Storage handles the export directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the resolved data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns the file path for an export named base in the given format.
func (s *Storage) Path(base string, format Format) string {
	return filepath.Join(s.dataDir, base+"."+string(format))
}

// SaveRecords writes records to <base>.<format> in the data directory,
// replacing any previous export, and returns the file path.
func (s *Storage) SaveRecords(base string, format Format, records []*fifa.SeasonRecord) (string, error) {
	path := s.Path(base, format)

	tmp, err := os.CreateTemp(s.dataDir, "."+base+"-*")
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteRecords(tmp, format, records); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	return path, nil
}

// WriteRecords encodes records to w.
func WriteRecords(w io.Writer, format Format, records []*fifa.SeasonRecord) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeCSV(w io.Writer, records []*fifa.SeasonRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fifa.Fields); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("writing csv row for player %s: %w", r.Player, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// writeJSON emits one object per line so large exports stream.
func writeJSON(w io.Writer, records []*fifa.SeasonRecord) error {
	encoder := json.NewEncoder(w)
	for _, r := range records {
		if err := encoder.Encode(r.Map()); err != nil {
			return fmt.Errorf("encoding record for player %s: %w", r.Player, err)
		}
	}
	return nil
}
