package gen

import "strings"

// GeneratedFileExtension is appended to derived output file names.
const GeneratedFileExtension = ".pb.swift"

// FileNaming selects the output-filename derivation policy.
type FileNaming int

const (
	// NamingFullPath preserves the source directory tree. Injective.
	NamingFullPath FileNaming = iota
	// NamingPathToUnderscores flattens the directory by replacing every
	// path separator with an underscore. Distinct inputs can collide;
	// collision detection is the caller's responsibility.
	NamingPathToUnderscores
	// NamingDropPath keeps only the base name. Non-injective by design.
	NamingDropPath
)

// String returns the option spelling of the policy.
func (n FileNaming) String() string {
	switch n {
	case NamingPathToUnderscores:
		return "PathToUnderscores"
	case NamingDropPath:
		return "DropPath"
	default:
		return "FullPath"
	}
}

// ParseFileNaming parses the option spelling of a naming policy.
func ParseFileNaming(s string) (FileNaming, error) {
	switch s {
	case "FullPath":
		return NamingFullPath, nil
	case "PathToUnderscores":
		return NamingPathToUnderscores, nil
	case "DropPath":
		return NamingDropPath, nil
	default:
		return NamingFullPath, NewConfigError("FileNaming", s, "use FullPath, PathToUnderscores, or DropPath")
	}
}

// Visibility selects the access level of generated declarations.
type Visibility int

const (
	// VisibilityFileLocal keeps generated declarations module-local.
	VisibilityFileLocal Visibility = iota
	// VisibilityPublic exports generated declarations and re-exports
	// their dependency modules.
	VisibilityPublic
)

// String returns the option spelling of the visibility.
func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "Public"
	}
	return "FileLocal"
}

// ParseVisibility parses the option spelling of a visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "Public":
		return VisibilityPublic, nil
	case "FileLocal", "Internal":
		return VisibilityFileLocal, nil
	default:
		return VisibilityFileLocal, NewConfigError("Visibility", s, "use Public or FileLocal")
	}
}

// Mode selects the generation profile.
type Mode int

const (
	// ModeFull generates declarations plus runtime support, the version
	// guard, and extension support.
	ModeFull Mode = iota
	// ModeLite generates declarations only, for smaller output with no
	// runtime-reflection dependency.
	ModeLite
)

// String returns the option spelling of the mode.
func (m Mode) String() string {
	if m == ModeLite {
		return "Lite"
	}
	return "Full"
}

// ParseMode parses the option spelling of a generation mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "Full":
		return ModeFull, nil
	case "Lite":
		return ModeLite, nil
	default:
		return ModeFull, NewConfigError("Mode", s, "use Full or Lite")
	}
}

// ImportDirective selects how dependency imports are spelled.
type ImportDirective int

const (
	// ImportPlain emits plain import statements.
	ImportPlain ImportDirective = iota
	// ImportImplementationOnly hides dependency modules from the
	// generated module's public interface.
	ImportImplementationOnly
	// ImportAccessLevel spells the configured visibility on each import.
	ImportAccessLevel
)

// String returns the option spelling of the directive.
func (d ImportDirective) String() string {
	switch d {
	case ImportImplementationOnly:
		return "ImplementationOnly"
	case ImportAccessLevel:
		return "AccessLevel"
	default:
		return "Plain"
	}
}

// ParseImportDirective parses the option spelling of an import directive.
func ParseImportDirective(s string) (ImportDirective, error) {
	switch s {
	case "Plain":
		return ImportPlain, nil
	case "ImplementationOnly":
		return ImportImplementationOnly, nil
	case "AccessLevel":
		return ImportAccessLevel, nil
	default:
		return ImportPlain, NewConfigError("ImportDirective", s, "use Plain, ImplementationOnly, or AccessLevel")
	}
}

// ModuleMapping maps a proto path prefix to the Swift module declaring
// its generated types.
type ModuleMapping struct {
	// Prefix is a proto path or directory prefix (e.g. "google/api").
	Prefix string
	// Module is the Swift module name.
	Module string
}

// Config holds the recognized generator options. It is immutable for
// the duration of one invocation and shared read-only by every file in
// a batch.
type Config struct {
	// FileNaming is the output-filename derivation policy.
	FileNaming FileNaming
	// Visibility is the access level of generated declarations.
	Visibility Visibility
	// Mode is the generation profile.
	Mode Mode
	// ImportDirective controls dependency import spelling.
	ImportDirective ImportDirective
	// ModuleMappings route dependency proto paths to Swift modules.
	ModuleMappings []ModuleMapping
	// ShortenPatterns are path substrings that switch sub-emitters to
	// shortened type names for matching input files.
	ShortenPatterns []string
}

// ShouldShorten reports whether the given proto path matches any
// configured name-shortening pattern.
func (c *Config) ShouldShorten(protoPath string) bool {
	for _, pat := range c.ShortenPatterns {
		if pat != "" && strings.Contains(protoPath, pat) {
			return true
		}
	}
	return false
}

// ModuleFor returns the mapped module for a dependency proto path. The
// longest matching prefix wins; ok is false when no mapping applies.
func (c *Config) ModuleFor(protoPath string) (string, bool) {
	var module string
	best := -1
	for _, mm := range c.ModuleMappings {
		if mm.Prefix == "" || mm.Module == "" {
			continue
		}
		if protoPath == mm.Prefix || strings.HasPrefix(protoPath, strings.TrimSuffix(mm.Prefix, "/")+"/") {
			if len(mm.Prefix) > best {
				best = len(mm.Prefix)
				module = mm.Module
			}
		}
	}
	return module, best >= 0
}
