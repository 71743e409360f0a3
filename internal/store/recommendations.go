// Package store persists recommendation lists and the user input log as flat text files.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/logger"
)

const fieldSeparator = ";"

// RecommendationStore holds the most recent recommendation list in a
// semicolon-delimited file. Each Write replaces the whole file.
//
// Fields are not escaped: a name or genre containing ';' produces a line that
// Read will skip.
type RecommendationStore struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewRecommendationStore creates a store backed by path.
func NewRecommendationStore(path string, log *logger.Logger) *RecommendationStore {
	return &RecommendationStore{path: path, logger: log.WithComponent("store")}
}

// Path returns the backing file path.
func (s *RecommendationStore) Path() string {
	return s.path
}

// Write replaces the stored list with entries. Scores are not persisted.
func (s *RecommendationStore) Write(entries []domain.RecommendationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, p := range domain.ToPersisted(entries) {
		line := p.Name + fieldSeparator + p.Genre + fieldSeparator + FormatRating(p.Rating) + "\n"
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return fmt.Errorf("write recommendations: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush recommendations: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename recommendations: %w", err)
	}
	return nil
}

// Read returns the stored list. A missing file reads as an empty list.
// Lines that do not hold exactly three fields with a numeric rating are skipped.
func (s *RecommendationStore) Read() ([]domain.PersistedRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.PersistedRecommendation{}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open recommendations: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		rec, err := parseLine(scanner.Text())
		if err != nil {
			s.logger.Warn("skipping malformed recommendation line", "line", lineNum, "error", err)
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recommendations: %w", err)
	}
	return out, nil
}

func parseLine(line string) (domain.PersistedRecommendation, error) {
	fields := strings.Split(strings.TrimSpace(line), fieldSeparator)
	if len(fields) != 3 {
		return domain.PersistedRecommendation{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return domain.PersistedRecommendation{}, fmt.Errorf("invalid rating %q", fields[2])
	}
	return domain.PersistedRecommendation{Name: fields[0], Genre: fields[1], Rating: rating}, nil
}

// FormatRating renders a float the way the legacy tool wrote it: shortest
// round-trip digits, always with a fractional part or exponent ("4.0", "4.25",
// "1e+16", "inf", "nan").
func FormatRating(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
