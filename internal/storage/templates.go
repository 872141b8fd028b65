// Package storage resolves template handles to parsed form templates.
// Templates live as JSON field dictionaries on disk; handles may instead
// carry inline bytes, which win over a path.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"filingdesk/internal/docgen"
	"filingdesk/internal/model"
)

// TemplateStore loads form templates from a base directory
type TemplateStore struct {
	dir string
}

// NewTemplateStore creates a template store rooted at dir
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// Resolve loads and parses the template a handle points at. Load and parse
// failures are the fatal path of the fill pipeline, so errors carry the
// template identifier and the underlying cause.
func (s *TemplateStore) Resolve(handle model.TemplateHandle) (*model.FormTemplate, error) {
	if len(handle.Bytes) > 0 {
		return docgen.ParseTemplate(handle.ID, handle.Bytes)
	}

	path := handle.Path
	if path == "" {
		path = handle.ID + ".json"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", handle.ID, err)
	}
	return docgen.ParseTemplate(handle.ID, data)
}
