package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Messages maps a language code to its flattened messages, keyed by dotted path.
type Messages map[string]map[string]string

// ParseYAML parses a YAML message catalog.
func ParseYAML(data []byte) (Messages, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return flattenDocument(doc)
}

// ParseJSON parses a JSON message catalog.
func ParseJSON(data []byte) (Messages, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return flattenDocument(doc)
}

// ParseFile reads a catalog, choosing the format from the file extension.
func ParseFile(path string) (Messages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return ParseYAML(data)
	case "json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func flattenDocument(doc map[string]any) (Messages, error) {
	out := make(Messages, len(doc))
	for lang, tree := range doc {
		m, ok := tree.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q holds %T, expected a map", ErrInvalidStructure, lang, tree)
		}
		flat := make(map[string]string)
		if err := flatten("", m, flat); err != nil {
			return nil, fmt.Errorf("language %q: %w", lang, err)
		}
		out[lang] = flat
	}
	return out, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		case string:
			out[key] = val
		case int, int64, float64, bool:
			out[key] = fmt.Sprint(val)
		default:
			return fmt.Errorf("%w: key %q holds %T", ErrInvalidStructure, key, v)
		}
	}
	return nil
}
