package gen

import (
	"path"
	"strings"
)

// OutputFileName derives the generated file name from a proto path and
// the configured naming policy. It is a total pure function: the proto
// suffix is dropped, the generated extension appended, and the
// directory handled per policy.
func OutputFileName(protoPath string, naming FileNaming) string {
	dir, base := path.Split(protoPath)
	base = strings.TrimSuffix(base, path.Ext(base))
	switch naming {
	case NamingPathToUnderscores:
		return strings.ReplaceAll(dir, "/", "_") + base + GeneratedFileExtension
	case NamingDropPath:
		return base + GeneratedFileExtension
	default:
		return dir + base + GeneratedFileExtension
	}
}

// IsValidIdentifier reports whether s is a legal bare identifier: a
// letter or underscore followed by letters, digits, or underscores.
// No escaping or quoting form is accepted.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
