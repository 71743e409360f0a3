package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/listenupapp/bookrec/internal/domain"
)

// Column widths of the recommendation table in the user input log.
const (
	titleWidth  = 30
	genreWidth  = 20
	ratingWidth = 10
)

// UserInputLog appends one record per query to a human-readable log.
type UserInputLog struct {
	path string
	mu   sync.Mutex
}

// NewUserInputLog creates a log backed by path.
func NewUserInputLog(path string) *UserInputLog {
	return &UserInputLog{path: path}
}

// Path returns the backing file path.
func (l *UserInputLog) Path() string {
	return l.path
}

// Append writes in to the end of the log, creating the file and its directory if needed.
func (l *UserInputLog) Append(in domain.UserInput) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //#nosec G302 -- log is meant to be readable
	if err != nil {
		return fmt.Errorf("open user input log: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "Name: %s\n", in.Username)
	fmt.Fprintf(w, "Option: %s\n", in.Choice)
	fmt.Fprintf(w, "Book Title: %s\n", in.InputData)
	fmt.Fprint(w, "Recommendations:\n")
	fmt.Fprint(w, TableHeader())
	for _, e := range in.Recommendations {
		fmt.Fprint(w, TableRow(e.Book))
	}
	fmt.Fprint(w, "\n")

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write user input log: %w", err)
	}
	return f.Close()
}

// TableHeader returns the fixed-width column header line.
func TableHeader() string {
	return fmt.Sprintf("%-*s%-*s%-*s\n", titleWidth, "Book Title", genreWidth, "Genre", ratingWidth, "Rating")
}

// TableRow formats one book as a fixed-width line. Long values are not truncated.
func TableRow(b domain.Book) string {
	b = b.WithDefaults()
	return fmt.Sprintf("%-*s%-*s%-*s\n", titleWidth, b.Name, genreWidth, b.Genre, ratingWidth, FormatRating(b.Rating))
}
