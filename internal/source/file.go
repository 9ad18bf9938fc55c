package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileSource reads the import list from a local JSON or YAML file.
// The format is picked from the extension; anything other than .yaml/.yml is
// treated as JSON.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a source reading path from fs.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

// Fetch implements Source.
func (s *FileSource) Fetch(_ context.Context) (*RawImportList, error) {
	if s.path == "" {
		return nil, newError(KindURL, fmt.Errorf("no import file given"))
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, newError(KindData, fmt.Errorf("read %s: %w", s.path, err))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, newError(KindData, fmt.Errorf("%s is empty", s.path))
	}

	var list RawImportList
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, newError(KindParsing, fmt.Errorf("decode %s: %w", s.path, err))
	}
	return &list, nil
}
