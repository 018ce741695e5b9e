package batch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

var entryModified = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type archiveEntry struct {
	name string
	data []byte
}

// Archive collects documents in memory. Adding a name that already exists
// replaces its content but keeps its original position.
type Archive struct {
	entries []archiveEntry
	index   map[string]int
}

func NewArchive() *Archive {
	return &Archive{index: make(map[string]int)}
}

// Add stores data under name and reports whether an earlier entry was replaced.
func (a *Archive) Add(name string, data []byte) bool {
	if i, ok := a.index[name]; ok {
		a.entries[i].data = data
		return true
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, archiveEntry{name: name, data: data})
	return false
}

func (a *Archive) Has(name string) bool {
	_, ok := a.index[name]
	return ok
}

func (a *Archive) Len() int {
	return len(a.entries)
}

func (a *Archive) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.name
	}
	return names
}

// Bytes writes the zip. Entry timestamps are fixed so the output depends
// only on the entries.
func (a *Archive) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range a.entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: entryModified,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create ZIP entry %s: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("failed to write ZIP entry %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close ZIP writer: %w", err)
	}
	return buf.Bytes(), nil
}
