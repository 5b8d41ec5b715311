package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// candidatePaths expands `name` into the list of files that are merged
// together, lowest priority first: <name>.<ext>, then <name>.local.<ext>.
func candidatePaths(name string) []string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)

	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)
	ext = strings.TrimPrefix(ext, ".")

	return []string{
		name,
		filepath.Join(dir, fmt.Sprintf("%s.local.%s", prefix, ext)),
	}
}

// ReadConfig reads a json5 configuration file, `name` should come with a
// file extension. A sibling `<name>.local.<ext>` file, if present, is merged
// on top of the base file so deployments can override individual fields
// without editing the checked-in config.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	for i, path := range candidatePaths(name) {
		contents, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return out, err
		}
		if len(contents) == 0 {
			continue
		}

		if i == 0 {
			if err := json5.Unmarshal(contents, &out); err != nil {
				return out, fmt.Errorf("parse %s: %w", path, err)
			}
			found = true
			continue
		}

		var override T
		if err := json5.Unmarshal(contents, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", path)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig, but it walks up the filesystem from the
// working directory until it finds a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	root, err := filepath.Abs("/")
	if err != nil {
		return zero, err
	}
	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for current != root {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			current = filepath.Join(current, "..")
			continue
		}
		if err != nil {
			return zero, err
		}
		return config, nil
	}

	return zero, os.ErrNotExist
}
