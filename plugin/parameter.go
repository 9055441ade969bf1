package plugin

import (
	"strings"

	"github.com/protokit/swiftpb/compiler/gen"
)

// ParseParameter maps the protoc invocation parameter, a comma
// separated list of key=value pairs, onto generator options. Later
// pairs win over earlier ones, and Config=<path> splices in a YAML
// configuration file at its position in the list.
func ParseParameter(parameter string) ([]gen.Option, error) {
	var opts []gen.Option
	if parameter == "" {
		return opts, nil
	}
	for _, pair := range strings.Split(parameter, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, gen.NewConfigError(key, "", "expected key=value")
		}
		switch key {
		case "FileNaming":
			opts = append(opts, gen.WithFileNaming(value))
		case "Visibility":
			opts = append(opts, gen.WithVisibility(value))
		case "Mode":
			opts = append(opts, gen.WithMode(value))
		case "ImportDirective":
			opts = append(opts, gen.WithImportDirective(value))
		case "Module":
			prefix, module, ok := strings.Cut(value, ":")
			if !ok {
				return nil, gen.NewConfigError(key, value, "expected Module=prefix:module")
			}
			opts = append(opts, gen.WithModuleMapping(prefix, module))
		case "Shorten":
			opts = append(opts, gen.WithShortenPatterns(strings.Split(value, ";")...))
		case "Config":
			fromFile, err := LoadConfig(value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, fromFile...)
		default:
			return nil, gen.NewConfigError(key, value, "unknown option")
		}
	}
	return opts, nil
}
