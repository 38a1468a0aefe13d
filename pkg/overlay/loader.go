package overlay

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS reads every JSON and YAML overlay file under fsys and merges them
// into a store. A nil filesystem or one without overlay files yields an empty
// store. Model names must be unique across all files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{models: make(map[string]Model)}
	if fsys == nil {
		return store, nil
	}

	paths, err := overlayFiles(fsys)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if err := store.loadFile(fsys, path); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// overlayFiles returns the data files under fsys in walk order.
func overlayFiles(fsys fs.FS) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

type overlayFile struct {
	Models map[string]modelFile `json:"models" yaml:"models"`
}

type modelFile struct {
	Table  string                 `json:"table" yaml:"table"`
	Meta   MetaConfig             `json:"meta" yaml:"meta"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func (s *Store) loadFile(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("overlay: read %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("overlay: file %s is empty", path)
	}

	var doc overlayFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return fmt.Errorf("overlay: parse %s: %w", path, err)
	}

	for name, raw := range doc.Models {
		model := strings.TrimSpace(name)
		if model == "" {
			return fmt.Errorf("overlay: file %s defines an empty model name", path)
		}
		if prior, exists := s.models[model]; exists {
			return fmt.Errorf("overlay: model %q defined in both %s and %s", model, prior.Source, path)
		}
		s.models[model] = buildModel(raw, model, path)
	}
	return nil
}

// buildModel copies a parsed file entry into its runtime form, trimming
// whitespace from the table override and field keys.
func buildModel(raw modelFile, name, source string) Model {
	model := Model{
		Name:   name,
		Source: source,
		Table:  strings.TrimSpace(raw.Table),
		Meta:   raw.Meta,
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}
	for key, cfg := range raw.Fields {
		if field := strings.TrimSpace(key); field != "" {
			model.Fields[field] = cfg
		}
	}
	return model
}
