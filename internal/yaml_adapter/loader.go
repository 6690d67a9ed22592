// Package yaml_adapter loads framework declarations from YAML documents of
// the form:
//
//	frameworks:
//	  - name: bigpipe
//	    tag_prefix: bp
//	    template: "global[{bp:hash}] = {bp:client};"
//	    middleware:
//	      log: RequestLogger
//
// YAML has no expression language, so every property is static.
package yaml_adapter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/vk/fittings/internal/config"
	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/fsutil"
	"github.com/vk/fittings/internal/property"
	"gopkg.in/yaml.v3"
)

// Keys that configure the framework itself rather than declaring a property.
const (
	keyName       = "name"
	keyTagPrefix  = "tag_prefix"
	keyDirectory  = "directory"
	keyInitialize = "initialize"
)

type document struct {
	Frameworks []map[string]any `yaml:"frameworks"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yaml and .yml file under paths.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		fws, err := Parse(data, file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		for _, fw := range fws {
			if err := model.Add(fw); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("YAML loading complete.", "frameworks", len(model.Frameworks))
	return model, nil
}

// Parse decodes one YAML payload. source is recorded on each framework and
// anchors its directory.
func Parse(data []byte, source string) ([]*config.Framework, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode declarations: %w", err)
	}

	out := make([]*config.Framework, 0, len(doc.Frameworks))
	for i, raw := range doc.Frameworks {
		fw, err := translate(raw, source)
		if err != nil {
			return nil, fmt.Errorf("frameworks[%d]: %w", i, err)
		}
		out = append(out, fw)
	}
	return out, nil
}

func translate(raw map[string]any, source string) (*config.Framework, error) {
	fw := &config.Framework{
		Properties: make(map[string]property.Value),
		Source:     source,
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := raw[key]
		switch key {
		case keyName, keyTagPrefix, keyDirectory, keyInitialize:
			s, ok := val.(string)
			if !ok && val != nil {
				return nil, fmt.Errorf("%q must be a string, got %T", key, val)
			}
			switch key {
			case keyName:
				fw.Name = s
			case keyTagPrefix:
				fw.TagPrefix = s
			case keyDirectory:
				fw.Directory = s
			case keyInitialize:
				fw.Initialize = s
			}
		default:
			v, err := property.From(scalarize(val))
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", key, err)
			}
			if v != nil {
				fw.Properties[key] = v
			}
		}
	}

	if fw.Name == "" {
		return nil, fmt.Errorf("%q is required", keyName)
	}
	fw.Directory = config.AnchorDirectory(source, fw.Directory)
	return fw, nil
}

// scalarize renders numbers and booleans as strings, at the top level and
// inside lists, so they become literals. Mappings are kept as decoded.
func scalarize(v any) any {
	switch t := v.(type) {
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = scalarize(item)
		}
		return out
	default:
		return v
	}
}
