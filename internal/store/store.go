// Package store persists harvest results to the local filesystem.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/naka-gawa/github-harvest/internal/domain"
)

// AppendLines appends each line followed by a newline to the file at path,
// creating it if needed. Existing content is never truncated.
func AppendLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	return f.Close()
}

// maxLineSize bounds a single harvest line on read.
const maxLineSize = 16 << 20

// ReadEntries reads a harvest file back. Blank lines are skipped.
func ReadEntries(path string) ([]domain.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open harvest file: %w", err)
	}
	defer f.Close()

	var entries []domain.Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := domain.ParseEntryLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read harvest file: %w", err)
	}
	return entries, nil
}

// ScreenshotPath returns the file name used for the screenshot at index.
func ScreenshotPath(dir string, index int) string {
	return filepath.Join(dir, strconv.Itoa(index)+".png")
}

// WriteScreenshot writes png to <dir>/<index>.png, overwriting any previous file.
func WriteScreenshot(dir string, index int, png []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	path := ScreenshotPath(dir, index)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}
