package project

import (
	"math"
	"path/filepath"
	"testing"

	"driftscope/internal/cluster"
	"driftscope/internal/spectrogram"
)

func TestBundleRoundTrip(t *testing.T) {
	sp, err := spectrogram.New(8, 5, spectrogram.Metadata{
		Source:     "synth",
		FCh0MHz:    1420.0,
		ChannelHz:  2.79,
		CadenceSec: 18.25,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for ch := 0; ch < 8; ch++ {
		for ts := 0; ts < 5; ts++ {
			sp.Set(ch, ts, float64(ch)*10+float64(ts))
		}
	}
	hits := []cluster.Hit{
		{Channel: 3, Time: 1, DriftRate: 0.5, SNR: 21.5},
		{Channel: 4, Time: 3, DriftRate: 0.5, SNR: 18.0},
	}

	dir := t.TempDir()
	headerPath, err := WriteBundle(dir, "obs01", sp, hits)
	if err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}

	s, got, gotHits, err := ReadBundle(headerPath)
	if err != nil {
		t.Fatalf("ReadBundle: %v", err)
	}
	if s.Channels != 8 || s.TimeSteps != 5 {
		t.Errorf("header extent: got %dx%d, want 8x5", s.Channels, s.TimeSteps)
	}
	if s.Meta.FCh0MHz != 1420.0 {
		t.Errorf("metadata lost: %+v", s.Meta)
	}
	for ch := 0; ch < 8; ch++ {
		for ts := 0; ts < 5; ts++ {
			if math.Abs(got.At(ch, ts)-sp.At(ch, ts)) > 1e-5 {
				t.Fatalf("matrix[%d,%d]: got %g, want %g", ch, ts, got.At(ch, ts), sp.At(ch, ts))
			}
		}
	}
	if len(gotHits) != 2 || gotHits[0] != hits[0] || gotHits[1] != hits[1] {
		t.Errorf("hits: got %+v, want %+v", gotHits, hits)
	}
}

func TestReadBundleMissingHitsIsNotAnError(t *testing.T) {
	sp, err := spectrogram.New(2, 2, spectrogram.Metadata{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dir := t.TempDir()

	s := New("bare")
	headerPath := filepath.Join(dir, "bare.scan.json")
	if err := s.WriteMatrix(headerPath, sp); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	if err := s.Save(headerPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, _, hits, err := ReadBundle(headerPath)
	if err != nil {
		t.Fatalf("ReadBundle without hits file: %v", err)
	}
	if hits != nil {
		t.Errorf("expected nil hits, got %+v", hits)
	}
}

func TestLoadRejectsBadExtent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.scan.json")
	s := New("bad")
	// Header saved without ever writing a matrix has zero extent.
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for zero extent header")
	}
}

func TestReadMatrixSizeMismatch(t *testing.T) {
	sp, err := spectrogram.New(4, 4, spectrogram.Metadata{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dir := t.TempDir()
	headerPath := filepath.Join(dir, "trunc.scan.json")
	s := New("trunc")
	if err := s.WriteMatrix(headerPath, sp); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	s.Channels = 8 // Claim more data than the file holds.
	if _, err := s.ReadMatrix(headerPath); err == nil {
		t.Error("expected error when the data file is shorter than the header extent")
	}
}

func TestReadMatrixRejectsOversizedFile(t *testing.T) {
	sp, err := spectrogram.New(4, 4, spectrogram.Metadata{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dir := t.TempDir()
	headerPath := filepath.Join(dir, "over.scan.json")
	s := New("over")
	if err := s.WriteMatrix(headerPath, sp); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	s.Channels = 2 // Claim less data than the file holds.
	if _, err := s.ReadMatrix(headerPath); err == nil {
		t.Error("expected error when the data file is larger than the header extent")
	}
}
