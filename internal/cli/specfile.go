package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
)

// specFile is the on-disk shape of a plot specification. The plot spec sits
// at the top level; an optional [render] table carries output settings that
// command-line flags override.
type specFile struct {
	plot.Spec
	Render plot.RenderOptions `json:"render,omitempty"`
}

// loadSpecFile reads a plot spec from a TOML or JSON file. The format is
// chosen by extension; anything that is not .json is treated as TOML.
//
// TOML documents are decoded through the JSON field names so both formats
// share one schema: the TOML is first unmarshalled into a generic map and
// then round-tripped through encoding/json into the typed spec.
func loadSpecFile(path string) (*specFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "spec file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "read spec file %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var file specFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse JSON spec %s", path)
		}
		return &file, nil
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse TOML spec %s", path)
	}
	bridged, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "convert TOML spec %s", path)
	}
	var file specFile
	if err := json.Unmarshal(bridged, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse spec %s", path)
	}
	return &file, nil
}
