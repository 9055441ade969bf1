package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		protoPath string
		naming    FileNaming
		want      string
	}{
		{"a/b/c.proto", NamingFullPath, "a/b/c.pb.swift"},
		{"a/b/c.proto", NamingPathToUnderscores, "a_b_c.pb.swift"},
		{"a/b/c.proto", NamingDropPath, "c.pb.swift"},
		{"c.proto", NamingFullPath, "c.pb.swift"},
		{"c.proto", NamingPathToUnderscores, "c.pb.swift"},
		{"c.proto", NamingDropPath, "c.pb.swift"},
		{"dir/no_ext", NamingFullPath, "dir/no_ext.pb.swift"},
		{"dir.with.dots/x.proto", NamingDropPath, "x.pb.swift"},
	}
	for _, tt := range tests {
		t.Run(tt.protoPath+"/"+tt.naming.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, OutputFileName(tt.protoPath, tt.naming))
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"a", "A", "_", "_x", "Valid_Name", "abc123", "_9"}
	for _, s := range valid {
		assert.True(t, IsValidIdentifier(s), s)
	}
	invalid := []string{"", "1abc", "9", "has-dash", "has space", "dotted.name", "emoji🚀"}
	for _, s := range invalid {
		assert.False(t, IsValidIdentifier(s), s)
	}
}
