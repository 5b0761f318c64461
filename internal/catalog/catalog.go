// Package catalog loads the declarative scene records the viewer can show.
//
// A catalog maps a scene key to its display metadata and the parameters the
// geometry builder needs. Catalogs are read from YAML or TOML files; a
// default catalog is embedded in the binary.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cyclorama/internal/cyclorama"
)

var (
	ErrSceneNotFound = errors.New("catalog: scene not found")
	ErrUnknownFormat = errors.New("catalog: unknown file format")
)

//go:embed scenes.yaml
var defaultScenes []byte

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Group is the selection screen section a scene is listed under.
type Group string

const (
	GroupBarker Group = "barker"
	GroupHornor Group = "hornor"
)

// Scene is one catalog entry.
type Scene struct {
	Key       string `json:"key" yaml:"-" toml:"-"`
	Title     string `json:"title" yaml:"title" toml:"title"`
	Subtitle  string `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Group     Group  `json:"group" yaml:"group" toml:"group"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" toml:"thumbnail,omitempty"`

	Params cyclorama.Params `json:"geometry" yaml:"geometry" toml:"geometry"`
}

type document struct {
	Scenes map[string]Scene `yaml:"scenes" toml:"scenes"`
}

// Catalog is an immutable set of scenes.
type Catalog struct {
	scenes map[string]Scene
	keys   []string
}

// Parse decodes a catalog. Unknown fields are rejected so typos in scene
// files surface as errors instead of silently zeroed geometry.
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("catalog: decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return newCatalog(doc.Scenes), nil
}

// Load reads a catalog file, choosing the decoder by extension.
func Load(path string) (*Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data, format)
}

// Default returns the catalog built into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultScenes, FormatYAML)
}

func newCatalog(scenes map[string]Scene) *Catalog {
	c := &Catalog{scenes: make(map[string]Scene, len(scenes))}
	for key, s := range scenes {
		s.Key = key
		c.scenes[key] = s
		c.keys = append(c.keys, key)
	}
	sort.Strings(c.keys)
	return c
}

// Len returns the number of scenes.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keys returns the scene keys in sorted order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Scenes returns every scene, sorted by key.
func (c *Catalog) Scenes() []Scene {
	out := make([]Scene, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.scene(k))
	}
	return out
}

// scene returns a copy of a stored scene that shares no memory with it.
func (c *Catalog) scene(key string) Scene {
	s := c.scenes[key]
	s.Params = s.Params.Clone()
	return s
}

// Scene looks a scene up by key.
func (c *Catalog) Scene(key string) (Scene, error) {
	if _, ok := c.scenes[key]; !ok {
		return Scene{}, fmt.Errorf("%w: %q", ErrSceneNotFound, key)
	}
	return c.scene(key), nil
}

// Geometry builds the descriptor for a scene.
func (c *Catalog) Geometry(key string) (cyclorama.Descriptor, error) {
	s, err := c.Scene(key)
	if err != nil {
		return cyclorama.Descriptor{}, err
	}
	d, err := cyclorama.Build(s.Params)
	if err != nil {
		return cyclorama.Descriptor{}, fmt.Errorf("scene %q: %w", key, err)
	}
	return d, nil
}

// Validate builds every scene and reports all failures together.
func (c *Catalog) Validate() error {
	var errs []error
	for _, key := range c.keys {
		s := c.scenes[key]
		if s.Group != GroupBarker && s.Group != GroupHornor {
			errs = append(errs, fmt.Errorf("scene %q: unknown group %q", key, s.Group))
		}
		if _, err := c.Geometry(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Changed lists, sorted, the keys added, removed or given different
// geometry since prev.
func (c *Catalog) Changed(prev *Catalog) []string {
	var keys []string
	for _, key := range c.keys {
		if _, ok := prev.scenes[key]; !ok {
			keys = append(keys, key)
			continue
		}
		now, errNow := c.Geometry(key)
		was, errWas := prev.Geometry(key)
		if errNow != nil || errWas != nil || !now.Equal(was) {
			keys = append(keys, key)
		}
	}
	for _, key := range prev.keys {
		if _, ok := c.scenes[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
