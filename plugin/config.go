package plugin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/protokit/swiftpb/compiler/gen"
)

// FileConfig mirrors the YAML configuration file accepted through the
// Config invocation option. Zero-valued fields leave the generator
// defaults untouched.
type FileConfig struct {
	FileNaming      string                `yaml:"fileNaming"`
	Visibility      string                `yaml:"visibility"`
	Mode            string                `yaml:"mode"`
	ImportDirective string                `yaml:"importDirective"`
	ModuleMappings  []ModuleMappingConfig `yaml:"moduleMappings"`
	ShortenPaths    []string              `yaml:"shortenPaths"`
}

// ModuleMappingConfig binds one schema path prefix to the Swift module
// that ships its generated types.
type ModuleMappingConfig struct {
	Prefix string `yaml:"prefix"`
	Module string `yaml:"module"`
}

// LoadConfig reads a YAML configuration file and converts it to
// generator options.
func LoadConfig(path string) ([]gen.Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("swiftpb: reading config %s: %w", path, err)
	}
	opts, err := ParseConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("swiftpb: config %s: %w", path, err)
	}
	return opts, nil
}

// ParseConfig converts raw YAML configuration to generator options.
func ParseConfig(raw []byte) ([]gen.Option, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, err
	}
	var opts []gen.Option
	if fc.FileNaming != "" {
		opts = append(opts, gen.WithFileNaming(fc.FileNaming))
	}
	if fc.Visibility != "" {
		opts = append(opts, gen.WithVisibility(fc.Visibility))
	}
	if fc.Mode != "" {
		opts = append(opts, gen.WithMode(fc.Mode))
	}
	if fc.ImportDirective != "" {
		opts = append(opts, gen.WithImportDirective(fc.ImportDirective))
	}
	for _, m := range fc.ModuleMappings {
		opts = append(opts, gen.WithModuleMapping(m.Prefix, m.Module))
	}
	if len(fc.ShortenPaths) > 0 {
		opts = append(opts, gen.WithShortenPatterns(fc.ShortenPaths...))
	}
	return opts, nil
}
