package gen

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/protokit/swiftpb/compiler/descriptor"
)

// swiftKeywords are escaped with backticks when they surface as member
// or case names in generated source.
var swiftKeywords = map[string]bool{
	"associatedtype": true, "case": true, "class": true, "default": true,
	"defer": true, "do": true, "else": true, "enum": true, "extension": true,
	"false": true, "for": true, "func": true, "if": true, "import": true,
	"in": true, "init": true, "internal": true, "let": true, "nil": true,
	"none": true, "operator": true, "private": true, "protocol": true,
	"public": true, "return": true, "self": true, "static": true,
	"struct": true, "subscript": true, "switch": true, "true": true,
	"var": true, "where": true, "while": true,
}

// Namer resolves qualified Swift identifiers for one schema file. It is
// built once per file from the descriptor and the module-mapping
// configuration and is never shared across files.
type Namer struct {
	file       *descriptor.File
	cfg        *Config
	typePrefix string
}

// NewNamer builds the name resolver for one file. The configured type
// prefix must already be validated by the caller.
func NewNamer(f *descriptor.File, cfg *Config) *Namer {
	n := &Namer{file: f, cfg: cfg}
	if p := f.Options.SwiftPrefix; p != "" {
		n.typePrefix = p
	} else {
		n.typePrefix = derivePrefix(f.Package)
	}
	return n
}

// derivePrefix maps a proto package to a type-name prefix:
// "my.pkg" -> "My_Pkg_".
func derivePrefix(pkg string) string {
	if pkg == "" {
		return ""
	}
	parts := strings.Split(pkg, ".")
	for i, part := range parts {
		parts[i] = inflect.Camelize(sanitizeIdentifier(part))
	}
	return strings.Join(parts, "_") + "_"
}

func sanitizeIdentifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// File returns the schema file this resolver is scoped to.
func (n *Namer) File() *descriptor.File {
	return n.file
}

// TypePrefix returns the prefix applied to top-level generated type
// names: the configured prefix when present, otherwise derived from the
// proto package.
func (n *Namer) TypePrefix() string {
	return n.typePrefix
}

// TopLevelName returns the declared Swift name of a top-level type.
// With shorten set, the package-derived prefix is omitted.
func (n *Namer) TopLevelName(bare string, shorten bool) string {
	if shorten {
		return sanitizeIdentifier(bare)
	}
	return n.typePrefix + sanitizeIdentifier(bare)
}

// ResolveTypeName maps a fully-qualified proto type reference (leading
// dot form, e.g. ".my.pkg.Outer.Inner") to its Swift spelling.
func (n *Namer) ResolveTypeName(typeName string) (string, error) {
	if !strings.HasPrefix(typeName, ".") {
		return "", fmt.Errorf("unresolvable type name %q: expected fully-qualified reference", typeName)
	}
	rest := typeName[1:]
	if pkg := n.file.Package; pkg != "" && strings.HasPrefix(rest, pkg+".") {
		return n.typePrefix + rest[len(pkg)+1:], nil
	}
	// Foreign reference: leading lowercase components form the package.
	parts := strings.Split(rest, ".")
	split := 0
	for split < len(parts) && isLowerInitial(parts[split]) {
		split++
	}
	if split == len(parts) {
		return "", fmt.Errorf("unresolvable type name %q: no type component", typeName)
	}
	return derivePrefix(strings.Join(parts[:split], ".")) + strings.Join(parts[split:], "."), nil
}

func isLowerInitial(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}

// ModuleFor returns the mapped Swift module for a dependency path.
func (n *Namer) ModuleFor(protoPath string) (string, bool) {
	return n.cfg.ModuleFor(protoPath)
}

// CaseName maps a proto enum constant to its Swift case spelling.
func (n *Namer) CaseName(value string) string {
	return escapeKeyword(inflect.CamelizeDownFirst(strings.ToLower(value)))
}

// MemberName maps a proto field name to its Swift member spelling.
func (n *Namer) MemberName(field string) string {
	return escapeKeyword(inflect.CamelizeDownFirst(strings.ToLower(field)))
}

// ExtensionDeclName returns the file-scope constant name declaring an
// extension field.
func (n *Namer) ExtensionDeclName(x *descriptor.Field) string {
	return n.typePrefix + "Extensions_" + sanitizeIdentifier(x.Name)
}

// RegistryName returns the name of the per-file extension registry.
func (n *Namer) RegistryName() string {
	base := path.Base(n.file.Name)
	base = strings.TrimSuffix(base, path.Ext(base))
	return n.typePrefix + inflect.Camelize(sanitizeIdentifier(base)) + "_Extensions"
}

// FullProtoName returns the dotted proto name of a top-level symbol,
// qualified by the file's package when present.
func (n *Namer) FullProtoName(bare string) string {
	if n.file.Package == "" {
		return bare
	}
	return n.file.Package + "." + bare
}

func escapeKeyword(s string) string {
	if swiftKeywords[s] {
		return "`" + s + "`"
	}
	return s
}
