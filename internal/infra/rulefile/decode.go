package rulefile

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// decodeFile читает файл и декодирует его в out по расширению:
// .json и .jsonc допускают комментарии и висячие запятые, .yaml и .yml разбираются как YAML
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rulefile: reading %s: %w", path, err)
	}

	if err := decode(filepath.Ext(path), data, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decode(ext string, data []byte, out interface{}) error {
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// asInt приводит число из JSON (float64) или YAML (int) к int
// Булевы и дробные значения не считаются числами
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
