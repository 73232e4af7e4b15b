package agent

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

var ErrPromptNotFound = errors.New("prompt file not found")

// LoadPrompt reads the persona prompt at path.
func LoadPrompt(fsys afero.Fs, path string) (string, error) {
	if path == "" {
		return "", ErrPromptNotFound
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrPromptNotFound)
		}
		return "", fmt.Errorf("failed to read prompt %s: %w", path, err)
	}
	return string(data), nil
}
