package gen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protokit/swiftpb/compiler/descriptor"
)

// fakeDialect records sequencing with trivially parseable output so the
// orchestrator's ordering can be asserted without a real emitter.
type fakeDialect struct {
	failOn string
}

func (fakeDialect) Name() string { return "fake" }

func (d fakeDialect) NewEnumEmitter(e *descriptor.Enum, cfg *Config, n *Namer, shorten bool) EnumEmitter {
	return fakeEnum{name: n.TopLevelName(e.Name, shorten)}
}

func (d fakeDialect) NewMessageEmitter(m *descriptor.Message, cfg *Config, n *Namer, shorten bool, exts ExtensionAggregator) MessageEmitter {
	return fakeMessage{name: n.TopLevelName(m.Name, shorten), failOn: d.failOn, bare: m.Name}
}

func (fakeDialect) NewExtensionAggregator(f *descriptor.File, cfg *Config, n *Namer) ExtensionAggregator {
	return &fakeExts{}
}

type fakeEnum struct{ name string }

func (e fakeEnum) Declare(p *Printer) { p.Print("enum " + e.name + " {}\n") }
func (e fakeEnum) RuntimeSupport(p *Printer, fc *FileContext) {
	p.Print("support " + e.name + "\n")
}

type fakeMessage struct{ name, bare, failOn string }

func (m fakeMessage) Declare(p *Printer) error {
	if m.bare == m.failOn {
		return NewDeclarationError("", m.bare, "forced failure", nil)
	}
	p.Print("struct " + m.name + " {}\n")
	return nil
}

func (m fakeMessage) RuntimeSupport(p *Printer, fc *FileContext) {
	p.Print("support " + m.name + "\n")
}

type fakeExts struct{ exts []*descriptor.Field }

func (a *fakeExts) Register(x *descriptor.Field) { a.exts = append(a.exts, x) }
func (a *fakeExts) IsEmpty() bool                { return len(a.exts) == 0 }
func (a *fakeExts) DeclareAccessors(p *Printer)  { p.Print("accessors\n") }
func (a *fakeExts) DeclareRegistry(p *Printer)   { p.Print("registry\n") }
func (a *fakeExts) DeclareRaw(p *Printer)        { p.Print("raw\n") }

func declFile() *descriptor.File {
	return &descriptor.File{
		Name:    "a/b/sample.proto",
		Package: "my.pkg",
		Enums: []*descriptor.Enum{
			{Name: "E0"}, {Name: "E1"},
		},
		Messages: []*descriptor.Message{
			{Name: "M0"}, {Name: "M1"},
		},
		Extensions: []*descriptor.Field{
			{Name: "ext", Number: 100, Extendee: ".my.pkg.M0"},
		},
	}
}

// assertOrder requires each part to occur, in the given order.
func assertOrder(t *testing.T, content string, parts ...string) {
	t.Helper()
	last := -1
	for _, part := range parts {
		idx := strings.Index(content, part)
		require.GreaterOrEqual(t, idx, 0, "missing %q", part)
		require.Greater(t, idx, last, "%q out of order", part)
		last = idx
	}
}

func TestGenerateOrdering(t *testing.T) {
	g := NewFileGenerator(declFile(), MustNewConfig(), fakeDialect{})
	a, err := g.Run()
	require.NoError(t, err)
	assert.Equal(t, "a/b/sample.pb.swift", a.Name)

	assertOrder(t, a.Content,
		"// DO NOT EDIT.",
		"Source: a/b/sample.proto",
		"import SwiftProtobuf",
		"_GeneratedWithSwiftpbVersion",
		"enum My_Pkg_E0 {}",
		"enum My_Pkg_E1 {}",
		"struct My_Pkg_M0 {}",
		"struct My_Pkg_M1 {}",
		"// MARK: - Extension support defined in a/b/sample.proto.",
		"accessors",
		"registry",
		"raw",
		"// MARK: - Code below here is support for the SwiftProtobuf runtime.",
		`fileprivate let _protobuf_package = "my.pkg"`,
		"support My_Pkg_E0",
		"support My_Pkg_E1",
		"support My_Pkg_M0",
		"support My_Pkg_M1",
	)
}

func TestGenerateFirstErrorWins(t *testing.T) {
	g := NewFileGenerator(declFile(), MustNewConfig(), fakeDialect{failOn: "M0"})
	a, err := g.Run()
	require.Error(t, err)
	assert.True(t, IsDeclarationError(err))
	assert.Contains(t, err.Error(), "M0")
	assert.Zero(t, a, "no artifact on error")
}

func TestGeneratePrefixValidation(t *testing.T) {
	t.Run("malformed prefix rejected before any output", func(t *testing.T) {
		f := declFile()
		f.Options.SwiftPrefix = "1abc"
		p := NewPrinter()
		err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Generate(p)
		require.Error(t, err)
		assert.True(t, IsInvalidIdentifierError(err))
		assert.True(t, p.IsEmpty())
	})

	t.Run("valid prefix accepted", func(t *testing.T) {
		f := declFile()
		f.Options.SwiftPrefix = "Valid_Name"
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "enum Valid_NameE0 {}")
	})

	t.Run("empty prefix is not an error", func(t *testing.T) {
		_, err := NewFileGenerator(declFile(), MustNewConfig(), fakeDialect{}).Run()
		assert.NoError(t, err)
	})
}

func TestGenerateEmptyFile(t *testing.T) {
	empty := &descriptor.File{Name: "empty.proto", Package: "my.pkg"}

	t.Run("full", func(t *testing.T) {
		a, err := NewFileGenerator(empty, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		want := fmt.Sprintf(bannerTemplate, "full", "empty.proto") + "\n" + noDeclarationsComment
		assert.Equal(t, want, a.Content)
	})

	t.Run("lite", func(t *testing.T) {
		a, err := NewFileGenerator(empty, MustNewConfig(WithMode("Lite")), fakeDialect{}).Run()
		require.NoError(t, err)
		want := fmt.Sprintf(bannerTemplate, "lite", "empty.proto") + "\n" + noDeclarationsComment
		assert.Equal(t, want, a.Content)
		assert.NotContains(t, a.Content, "import")
	})

	t.Run("dependency imports precede the notice", func(t *testing.T) {
		f := &descriptor.File{
			Name:         "empty.proto",
			Dependencies: []string{"vendor/a.proto"},
		}
		cfg := MustNewConfig(WithModuleMapping("vendor", "Vendor"))
		a, err := NewFileGenerator(f, cfg, fakeDialect{}).Run()
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(a.Content, "import Vendor\n\n"+noDeclarationsComment))
		assert.NotContains(t, a.Content, "SwiftProtobuf")
	})
}

func TestGenerateImports(t *testing.T) {
	t.Run("runtime import with declarations", func(t *testing.T) {
		a, err := NewFileGenerator(declFile(), MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "import SwiftProtobuf\n")
		assert.NotContains(t, a.Content, "import Foundation")
	})

	t.Run("foundation for bytes fields", func(t *testing.T) {
		f := declFile()
		f.Messages[0].Fields = []*descriptor.Field{
			{Name: "payload", Number: 1, Type: descriptorpb.FieldDescriptorProto_TYPE_BYTES},
		}
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "import Foundation\nimport SwiftProtobuf\n")
	})

	t.Run("blank separator before dependency imports", func(t *testing.T) {
		f := declFile()
		f.Dependencies = []string{"vendor/a.proto"}
		cfg := MustNewConfig(WithModuleMapping("vendor", "Vendor"))
		a, err := NewFileGenerator(f, cfg, fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "import SwiftProtobuf\n\nimport Vendor\n")
	})

	t.Run("bundled runtime suppresses its own import", func(t *testing.T) {
		f := declFile()
		f.Name = "google/protobuf/sample.proto"
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "// 'import SwiftProtobuf' suppressed")
		assert.NotContains(t, a.Content, "\nimport SwiftProtobuf\n")
	})
}

func TestGenerateLiteMode(t *testing.T) {
	cfg := MustNewConfig(WithMode("Lite"))
	a, err := NewFileGenerator(declFile(), cfg, fakeDialect{}).Run()
	require.NoError(t, err)

	assert.Contains(t, a.Content, "import Foundation\n")
	assert.Contains(t, a.Content, "enum My_Pkg_E0 {}")
	assert.Contains(t, a.Content, "struct My_Pkg_M1 {}")
	assert.NotContains(t, a.Content, "SwiftProtobuf")
	assert.NotContains(t, a.Content, "// MARK")
	assert.NotContains(t, a.Content, "support ")
	assert.NotContains(t, a.Content, "accessors")
}

func TestGenerateShortenedNames(t *testing.T) {
	cfg := MustNewConfig(WithMode("Lite"), WithShortenPatterns("a/b/"))
	a, err := NewFileGenerator(declFile(), cfg, fakeDialect{}).Run()
	require.NoError(t, err)
	assert.Contains(t, a.Content, "enum E0 {}")
	assert.Contains(t, a.Content, "struct M0 {}")

	t.Run("full mode never shortens", func(t *testing.T) {
		cfg := MustNewConfig(WithShortenPatterns("a/b/"))
		a, err := NewFileGenerator(declFile(), cfg, fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "enum My_Pkg_E0 {}")
	})
}

func TestGeneratePackageBinding(t *testing.T) {
	t.Run("no package no binding", func(t *testing.T) {
		f := declFile()
		f.Package = ""
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.NotContains(t, a.Content, "_protobuf_package")
	})

	t.Run("no top-level message no binding", func(t *testing.T) {
		f := declFile()
		f.Messages = nil
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.NotContains(t, a.Content, "_protobuf_package")
	})
}

func TestGeneratePreambleComments(t *testing.T) {
	build := func(locs []*descriptorpb.SourceCodeInfo_Location) *descriptor.File {
		return descriptor.New(&descriptorpb.FileDescriptorProto{
			Name:           strPtr("commented.proto"),
			Package:        strPtr("my.pkg"),
			Syntax:         strPtr("proto3"),
			EnumType:       []*descriptorpb.EnumDescriptorProto{{Name: strPtr("E0")}},
			SourceCodeInfo: &descriptorpb.SourceCodeInfo{Location: locs},
		})
	}

	t.Run("syntax comment carried over", func(t *testing.T) {
		f := build([]*descriptorpb.SourceCodeInfo_Location{
			{
				Path:                    []int32{descriptor.SyntaxFieldNumber},
				LeadingComments:         strPtr(" What this schema is for.\n"),
				LeadingDetachedComments: []string{" Copyright notice.\n"},
			},
		})
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assertOrder(t, a.Content,
			"// DO NOT EDIT.",
			"// Copyright notice.\n",
			"/// What this schema is for.\n",
			"enum My_Pkg_E0 {}",
		)
	})

	t.Run("edition comment preferred over syntax", func(t *testing.T) {
		f := build([]*descriptorpb.SourceCodeInfo_Location{
			{
				Path:            []int32{descriptor.SyntaxFieldNumber},
				LeadingComments: strPtr(" From the syntax marker.\n"),
			},
			{
				Path:            []int32{descriptor.EditionFieldNumber},
				LeadingComments: strPtr(" From the edition marker.\n"),
			},
		})
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "/// From the edition marker.\n")
		assert.NotContains(t, a.Content, "From the syntax marker.")
	})

	t.Run("comment block ends with one blank line", func(t *testing.T) {
		f := build([]*descriptorpb.SourceCodeInfo_Location{
			{
				Path:            []int32{descriptor.SyntaxFieldNumber},
				LeadingComments: strPtr(" Header.\n"),
			},
		})
		a, err := NewFileGenerator(f, MustNewConfig(), fakeDialect{}).Run()
		require.NoError(t, err)
		assert.Contains(t, a.Content, "/// Header.\n\nimport SwiftProtobuf\n")
	})
}

func strPtr(s string) *string { return &s }

func TestGenerateDeterministic(t *testing.T) {
	cfg := MustNewConfig()
	first, err := NewFileGenerator(declFile(), cfg, fakeDialect{}).Run()
	require.NoError(t, err)
	second, err := NewFileGenerator(declFile(), cfg, fakeDialect{}).Run()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
