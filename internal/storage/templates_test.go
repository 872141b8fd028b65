package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/model"
)

const petitionJSON = `{
	"title": "Petition for Dissolution of Marriage",
	"fields": [
		{"name": "PetitionerName", "kind": "text"},
		{"name": "HasMinorChildren", "kind": "checkbox"}
	]
}`

func TestResolveFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "divorce_petition.json"), []byte(petitionJSON), 0o644))

	store := NewTemplateStore(dir)
	tpl, err := store.Resolve(model.TemplateHandle{ID: "divorce_petition"})
	require.NoError(t, err)
	assert.Equal(t, "divorce_petition", tpl.ID)
	assert.Len(t, tpl.Fields, 2)
}

func TestResolveExplicitPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.json"), []byte(petitionJSON), 0o644))

	store := NewTemplateStore(dir)
	tpl, err := store.Resolve(model.TemplateHandle{ID: "divorce_petition", Path: "custom.json"})
	require.NoError(t, err)
	assert.Equal(t, "divorce_petition", tpl.ID)
}

func TestResolveInlineBytesWinOverPath(t *testing.T) {
	store := NewTemplateStore(t.TempDir())
	tpl, err := store.Resolve(model.TemplateHandle{
		ID:    "inline",
		Path:  "does-not-exist.json",
		Bytes: []byte(petitionJSON),
	})
	require.NoError(t, err)
	assert.Equal(t, "inline", tpl.ID)
}

func TestResolveMissingFile(t *testing.T) {
	store := NewTemplateStore(t.TempDir())
	_, err := store.Resolve(model.TemplateHandle{ID: "no_such_template"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_template")
}
