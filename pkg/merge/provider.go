package merge

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	errUtils "github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/interpolate"
	"github.com/adobe/kompos/pkg/logger"
	"github.com/adobe/kompos/pkg/perf"
	"github.com/adobe/kompos/pkg/schema"
	"github.com/adobe/kompos/pkg/value"
)

// DiscoverLayers returns the cumulative directory chain from root to
// the given context path, in order. Only existing directories count as
// layers.
func DiscoverLayers(configPath string) ([]string, error) {
	clean := filepath.ToSlash(filepath.Clean(configPath))
	if clean == "" || clean == "." {
		return nil, errUtils.Build(errUtils.ErrInvalidConfigPath).
			WithExplanation("configuration path is empty").
			Err()
	}

	var layers []string
	current := ""
	if strings.HasPrefix(clean, "/") {
		current = "/"
	}
	for _, segment := range strings.Split(clean, "/") {
		if segment == "" {
			continue
		}
		switch current {
		case "", "/":
			current += segment
		default:
			current = current + "/" + segment
		}
		info, err := os.Stat(filepath.FromSlash(current))
		if err == nil && info.IsDir() {
			layers = append(layers, current)
		}
	}

	if len(layers) == 0 {
		return nil, errUtils.Build(errUtils.ErrInvalidConfigPath).
			WithExplanationf("no configuration layers found under %q", configPath).
			WithHint("the path must point into a directory hierarchy of YAML files").
			Err()
	}

	return layers, nil
}

// DiscoverLeafPaths walks the tree under root and returns the deepest
// directories containing YAML files: the deployable contexts.
func DiscoverLeafPaths(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errUtils.Build(errUtils.ErrInvalidConfigPath).
			WithExplanationf("%q is not a directory", root).
			Err()
	}

	var leaves []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}

		var subdirs []string
		hasYAML := false
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				if !strings.HasPrefix(name, ".") {
					subdirs = append(subdirs, filepath.Join(dir, name))
				}
				continue
			}
			if isYAMLFile(name) {
				hasYAML = true
			}
		}

		if len(subdirs) == 0 {
			if hasYAML {
				leaves = append(leaves, filepath.ToSlash(dir))
			}
			return nil
		}
		for _, sub := range subdirs {
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	sort.Strings(leaves)
	return leaves, nil
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// LoadHierarchy builds the full root-to-leaf chain of layer snapshots
// for a context path: per layer it merges the layer's files on top of
// the accumulated configuration, resolves interpolation as far as
// possible and records which file contributed each key.
func LoadHierarchy(cfg *schema.KomposConfiguration, configPath string) (*hierarchy.Path, error) {
	defer perf.Track("merge.LoadHierarchy")()

	layers, err := DiscoverLayers(configPath)
	if err != nil {
		return nil, err
	}

	path := &hierarchy.Path{ID: filepath.ToSlash(filepath.Clean(configPath))}
	cumulative := map[string]any{}
	var keyOrder []string
	seen := make(map[string]bool)

	for ordinal, layerDir := range layers {
		snapshot, next, err := loadLayer(cfg, layerDir, ordinal, cumulative, &keyOrder, seen)
		if err != nil {
			return nil, err
		}
		cumulative = next
		path.Layers = append(path.Layers, snapshot)
	}

	return path, nil
}

// loadLayer merges one layer's files into the accumulated configuration
// and produces its snapshot. keyOrder/seen track first-seen flattened
// key order across the whole hierarchy so rendering stays stable.
func loadLayer(
	cfg *schema.KomposConfiguration,
	layerDir string,
	ordinal int,
	cumulative map[string]any,
	keyOrder *[]string,
	seen map[string]bool,
) (*hierarchy.LayerSnapshot, map[string]any, error) {
	files, err := layerFiles(layerDir)
	if err != nil {
		return nil, nil, err
	}

	origins := make(map[string][]string)
	inputs := []map[string]any{cumulative}

	for _, file := range files {
		parsed, err := parseYAMLFile(filepath.Join(filepath.FromSlash(layerDir), file))
		if err != nil {
			return nil, nil, err
		}

		fileFlat := value.Flatten(parsed)
		for _, key := range fileFlat.Paths() {
			origins[key] = append(origins[key], file)
			if !seen[key] {
				seen[key] = true
				*keyOrder = append(*keyOrder, key)
			}
		}

		mergeable, ok := ToMergeable(parsed).(map[string]any)
		if !ok {
			logger.Warn("skipping non-mapping configuration file", "file", file, "layer", layerDir)
			continue
		}
		inputs = append(inputs, mergeable)
	}

	merged, err := Merge(cfg, inputs)
	if err != nil {
		return nil, nil, err
	}

	mergedValue, err := FromMergeable(merged)
	if err != nil {
		return nil, nil, err
	}

	flat := value.Flatten(mergedValue)
	flat.OrderBy(*keyOrder)

	// Resolve interpolation as far as this layer's keys allow. The
	// partially resolved view is the layer's raw snapshot; a fully
	// resolved view exists only when no tokens remain.
	result := interpolate.Resolve(flat, cfg.Interpolation.MaxPasses)

	snapshot := &hierarchy.LayerSnapshot{
		ID:      layerDir,
		Ordinal: ordinal,
		Raw:     result.Resolved,
		Origins: origins,
		Files:   files,
	}
	if len(result.Unresolved) == 0 {
		snapshot.Resolved = result.Resolved
	} else {
		for _, token := range result.Unresolved {
			snapshot.Unresolved = append(snapshot.Unresolved, hierarchy.UnresolvedToken{
				Path:      token.Path,
				Reference: token.Reference,
			})
		}
	}

	return snapshot, merged, nil
}

func layerFiles(layerDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.FromSlash(layerDir))
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrInvalidConfigPath).
			WithExplanationf("cannot read layer directory %q", layerDir).
			WithCause(err).
			Err()
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && isYAMLFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func parseYAMLFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Null(), err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return value.Null(), errUtils.Build(errUtils.ErrMalformedSnapshot).
			WithExplanationf("cannot parse %q", path).
			WithCause(err).
			Err()
	}

	parsed, err := value.FromYAMLNode(&node)
	if err != nil {
		return value.Null(), err
	}
	if parsed.Kind() != value.KindMapping && !parsed.IsNull() {
		return value.Null(), errUtils.Build(errUtils.ErrMalformedSnapshot).
			WithExplanationf("%q does not contain a top-level mapping", path).
			Err()
	}
	if parsed.IsNull() {
		return value.Mapping(nil, nil), nil
	}
	return parsed, nil
}
