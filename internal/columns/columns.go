// Package columns tracks which table columns are displayed. Visibility is
// pure view state: toggling never touches records, filters, or pagination.
package columns

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Column describes one table column.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Visible  bool   `json:"visible"`
	Sortable bool   `json:"sortable"`
}

// Model is an ordered set of column descriptors.
type Model struct {
	cols []Column
}

// Default returns the built-in column set with its default visibility.
func Default() *Model {
	return &Model{cols: []Column{
		{Key: "company_name", Label: "Company", Visible: true, Sortable: true},
		{Key: "job_title", Label: "Position", Visible: true, Sortable: true},
		{Key: "status", Label: "Status", Visible: true, Sortable: true},
		{Key: "applied_date", Label: "Applied", Visible: true, Sortable: true},
		{Key: "last_interaction", Label: "Last activity", Visible: true, Sortable: true},
		{Key: "contact_person", Label: "Contact", Visible: true, Sortable: true},
		{Key: "priority", Label: "Priority", Visible: true, Sortable: true},
		{Key: "email_count", Label: "Emails", Visible: true, Sortable: false},
		{Key: "location", Label: "Location", Visible: false, Sortable: true},
		{Key: "interview_date", Label: "Interview", Visible: false, Sortable: true},
		{Key: "urgency_level", Label: "Urgency", Visible: false, Sortable: true},
		{Key: "source", Label: "Source", Visible: false, Sortable: true},
	}}
}

// Toggle flips visibility for a key. Unknown keys are a no-op and return
// false.
func (m *Model) Toggle(key string) bool {
	for i := range m.cols {
		if m.cols[i].Key == key {
			m.cols[i].Visible = !m.cols[i].Visible
			return true
		}
	}
	return false
}

// Visible returns the ordered subset of displayed columns.
func (m *Model) Visible() []Column {
	var out []Column
	for _, c := range m.cols {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// All returns every column in order.
func (m *Model) All() []Column {
	out := make([]Column, len(m.cols))
	copy(out, m.cols)
	return out
}

// Sortable reports whether a key exists and supports sorting.
func (m *Model) Sortable(key string) bool {
	for _, c := range m.cols {
		if c.Key == key {
			return c.Sortable
		}
	}
	return false
}

// savedState is the on-disk shape: just the visibility choices.
type savedState struct {
	Visible map[string]bool `json:"visible"`
}

// Load reads saved visibility from path and applies it over the defaults.
// A missing file yields the default model; keys that no longer exist are
// dropped silently.
func Load(path string) (*Model, error) {
	m := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, err
	}

	var state savedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	for i := range m.cols {
		if v, ok := state.Visible[m.cols[i].Key]; ok {
			m.cols[i].Visible = v
		}
	}
	return m, nil
}

// Save writes the visibility choices to path with an atomic replace, so a
// crash mid-write never leaves a truncated file.
func (m *Model) Save(path string) error {
	state := savedState{Visible: make(map[string]bool, len(m.cols))}
	for _, c := range m.cols {
		state.Visible[c.Key] = c.Visible
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
