package samplelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Log is an append-only sample file for one target. The sampler is its only
// writer; readers take repeated snapshots of the tail.
type Log struct {
	Path string
}

// Name returns the display name of the log: its file name without extension.
func (l Log) Name() string {
	base := filepath.Base(l.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Append writes one line and closes the file, so a concurrent reader only
// ever sees whole lines or a torn trailing line.
func (l Log) Append(s Sample) error {
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", l.Path, err)
	}
	if _, err := f.WriteString(FormatLine(s)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", l.Path, err)
	}
	return f.Close()
}

// Tail is the parsed result of reading the last lines of a log.
type Tail struct {
	Samples []Sample
	Lines   int // lines selected, including skipped ones
	Skipped int // selected lines that did not parse
}

// ReadTail reads the whole file and parses its last n lines.
func (l Log) ReadTail(n int) (Tail, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return Tail{}, err
	}
	defer f.Close()
	return ReadTail(f, n)
}

// ReadTail parses the last n non-blank lines of r. Unparsable lines are
// skipped and counted rather than failing the read.
func ReadTail(r io.Reader, n int) (Tail, error) {
	if n < 1 {
		n = 1
	}
	buf := newRing[string](n)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		buf.Add(line)
	}
	if err := sc.Err(); err != nil {
		return Tail{}, err
	}

	tail := Tail{
		Samples: make([]Sample, 0, buf.Len()),
		Lines:   buf.Len(),
	}
	for _, line := range buf.All() {
		s, err := ParseLine(line)
		if err != nil {
			tail.Skipped++
			continue
		}
		tail.Samples = append(tail.Samples, s)
	}
	return tail, nil
}
