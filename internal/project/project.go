// Package project provides scan-bundle file handling and persistence. A
// bundle is what the drift-search pipeline leaves on disk for diagnostics:
// a JSON header (.scan.json), a raw spectrogram matrix, and the detector's
// hit list.
package project

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"driftscope/internal/cluster"
	"driftscope/internal/spectrogram"

	"gonum.org/v1/gonum/mat"
)

// Scan is the bundle header (.scan.json).
type Scan struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Meta      spectrogram.Metadata `json:"meta"`
	Channels  int                  `json:"channels"`
	TimeSteps int                  `json:"time_steps"`

	// Data file paths (relative to the header file)
	DataPath string `json:"data,omitempty"` // Raw little-endian float32, channel-major
	HitsPath string `json:"hits,omitempty"` // JSON hit list
}

// New creates a new scan header with default settings.
func New(name string) *Scan {
	now := time.Now()
	return &Scan{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		DataPath: name + ".f32",
		HitsPath: name + ".hits.json",
	}
}

// Load loads a scan header from a .scan.json file.
func Load(path string) (*Scan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scan header: %w", err)
	}
	var s Scan
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scan header: %w", err)
	}
	if s.Channels <= 0 || s.TimeSteps <= 0 {
		return nil, fmt.Errorf("parse scan header: bad extent %dx%d", s.Channels, s.TimeSteps)
	}
	return &s, nil
}

// Save writes the scan header to a file.
func (s *Scan) Save(path string) error {
	s.Modified = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scan header: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scan header: %w", err)
	}
	return nil
}

// WriteMatrix writes the spectrogram matrix next to the header path.
func (s *Scan) WriteMatrix(headerPath string, sp *spectrogram.Spectrogram) error {
	s.Channels = sp.Channels()
	s.TimeSteps = sp.TimeSteps()
	s.Meta = sp.Meta()

	f, err := os.Create(s.resolve(headerPath, s.DataPath))
	if err != nil {
		return fmt.Errorf("create matrix file: %w", err)
	}
	defer f.Close()

	buf := make([]float32, s.TimeSteps)
	for ch := 0; ch < s.Channels; ch++ {
		for t := 0; t < s.TimeSteps; t++ {
			buf[t] = float32(sp.At(ch, t))
		}
		if err := binary.Write(f, binary.LittleEndian, buf); err != nil {
			return fmt.Errorf("write matrix row %d: %w", ch, err)
		}
	}
	return nil
}

// ReadMatrix loads the spectrogram matrix referenced by the header.
func (s *Scan) ReadMatrix(headerPath string) (*spectrogram.Spectrogram, error) {
	f, err := os.Open(s.resolve(headerPath, s.DataPath))
	if err != nil {
		return nil, fmt.Errorf("open matrix file: %w", err)
	}
	defer f.Close()

	buf := make([]float32, s.Channels*s.TimeSteps)
	if err := binary.Read(f, binary.LittleEndian, buf); err != nil {
		return nil, fmt.Errorf("read matrix data: %w", err)
	}
	// Reject trailing garbage; a size mismatch means the header and the
	// data file disagree. ReadFull distinguishes a clean EOF from a short
	// read, which a single Read call is not guaranteed to do.
	if _, err := io.ReadFull(f, make([]byte, 1)); err != io.EOF {
		return nil, fmt.Errorf("read matrix data: file larger than %dx%d header extent", s.Channels, s.TimeSteps)
	}

	values := make([]float64, len(buf))
	for i, v := range buf {
		values[i] = float64(v)
	}
	d := mat.NewDense(s.Channels, s.TimeSteps, values)
	return spectrogram.FromDense(d, s.Meta), nil
}

// WriteHits writes the hit list next to the header path.
func (s *Scan) WriteHits(headerPath string, hits []cluster.Hit) error {
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal hits: %w", err)
	}
	if err := os.WriteFile(s.resolve(headerPath, s.HitsPath), data, 0o644); err != nil {
		return fmt.Errorf("write hits: %w", err)
	}
	return nil
}

// ReadHits loads the hit list referenced by the header. A missing hits file
// is not an error; a scan can be inspected before the search has run.
func (s *Scan) ReadHits(headerPath string) ([]cluster.Hit, error) {
	data, err := os.ReadFile(s.resolve(headerPath, s.HitsPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read hits: %w", err)
	}
	var hits []cluster.Hit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("parse hits: %w", err)
	}
	return hits, nil
}

// resolve interprets a data path relative to the header file's directory.
func (s *Scan) resolve(headerPath, dataPath string) string {
	if filepath.IsAbs(dataPath) {
		return dataPath
	}
	return filepath.Join(filepath.Dir(headerPath), dataPath)
}

// WriteBundle persists a complete bundle (header, matrix, hits) under dir.
// The header lands at <dir>/<name>.scan.json.
func WriteBundle(dir, name string, sp *spectrogram.Spectrogram, hits []cluster.Hit) (string, error) {
	s := New(name)
	headerPath := filepath.Join(dir, name+".scan.json")
	if err := s.WriteMatrix(headerPath, sp); err != nil {
		return "", err
	}
	if err := s.WriteHits(headerPath, hits); err != nil {
		return "", err
	}
	if err := s.Save(headerPath); err != nil {
		return "", err
	}
	return headerPath, nil
}

// ReadBundle loads a complete bundle from its header path.
func ReadBundle(headerPath string) (*Scan, *spectrogram.Spectrogram, []cluster.Hit, error) {
	s, err := Load(headerPath)
	if err != nil {
		return nil, nil, nil, err
	}
	sp, err := s.ReadMatrix(headerPath)
	if err != nil {
		return nil, nil, nil, err
	}
	hits, err := s.ReadHits(headerPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return s, sp, hits, nil
}
