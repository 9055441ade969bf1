package gen

import (
	"fmt"
	"strings"

	"github.com/protokit/swiftpb/compiler/descriptor"
)

// RuntimeCompatibilityVersion is the runtime API version generated
// files are pinned to by the compile-time guard.
const RuntimeCompatibilityVersion = 2

const bannerTemplate = `// DO NOT EDIT.
// swift-format-ignore-file
//
// Generated by the swiftpb plug-in for the protocol buffer compiler (%s mode).
// Source: %s
//
// For information on using generated code, see:
//   https://github.com/protokit/swiftpb
//
`

const versionGuard = `// If the compiler emits an error on this type, it is because this file was
// generated by a version of the swiftpb plug-in that is incompatible with the
// version of the SwiftProtobuf runtime library you are linking against.
// Please ensure that you are building against the same version of the API
// that was used to generate this file.
`

const noDeclarationsComment = "// This file contained no messages, enums, or extensions.\n"

// Artifact is the durable result of generating one file.
type Artifact struct {
	// Name is the derived output file name.
	Name string
	// Content is the complete generated source text.
	Content string
}

// FileGenerator orchestrates the generation of one schema file: it
// validates the configured prefix, emits the preamble and imports,
// sequences the sub-emitters, and accumulates the output text. It is a
// pure function of (file, config) aside from writes into the printer.
type FileGenerator struct {
	file    *descriptor.File
	cfg     *Config
	namer   *Namer
	dialect Dialect
	imports ImportResolver
}

// NewFileGenerator builds the orchestrator for one file. The namer is
// created fresh here and shared with every sub-emitter of this file.
func NewFileGenerator(f *descriptor.File, cfg *Config, d Dialect) *FileGenerator {
	return &FileGenerator{
		file:    f,
		cfg:     cfg,
		namer:   NewNamer(f, cfg),
		dialect: d,
		imports: ModuleImportResolver{},
	}
}

// WithImportResolver replaces the dependency import resolver.
func (g *FileGenerator) WithImportResolver(r ImportResolver) *FileGenerator {
	if r != nil {
		g.imports = r
	}
	return g
}

// Namer returns the file's name resolver.
func (g *FileGenerator) Namer() *Namer {
	return g.namer
}

// OutputName derives the output file name under the configured policy.
func (g *FileGenerator) OutputName() string {
	return OutputFileName(g.file.Name, g.cfg.FileNaming)
}

// Run generates the file into a fresh printer and returns the artifact.
// On error no artifact is produced; partial text is discarded.
func (g *FileGenerator) Run() (Artifact, error) {
	p := NewPrinter()
	if err := g.Generate(p); err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: g.OutputName(), Content: p.String()}, nil
}

// Generate writes the file's complete source text into p. The first
// hard error aborts this file only; the printer contents are then
// not valid output.
func (g *FileGenerator) Generate(p *Printer) error {
	if prefix := g.file.Options.SwiftPrefix; prefix != "" && !IsValidIdentifier(prefix) {
		return NewInvalidIdentifierError(g.file.Name, prefix)
	}

	g.emitPreamble(p)

	depImports := 0
	if g.cfg.Mode == ModeFull {
		depImports = g.emitImports(p)
	}

	if !g.file.HasDeclarations() {
		if depImports > 0 {
			p.Print("\n")
		}
		p.Print(noDeclarationsComment)
		return nil
	}

	if g.cfg.Mode == ModeLite {
		p.Print("import Foundation\n")
	}

	shorten := g.cfg.Mode == ModeLite && g.cfg.ShouldShorten(g.file.Name)

	exts := g.dialect.NewExtensionAggregator(g.file, g.cfg, g.namer)
	for _, x := range g.file.Extensions {
		exts.Register(x)
	}
	enums := make([]EnumEmitter, 0, len(g.file.Enums))
	for _, e := range g.file.Enums {
		enums = append(enums, g.dialect.NewEnumEmitter(e, g.cfg, g.namer, shorten))
	}
	messages := make([]MessageEmitter, 0, len(g.file.Messages))
	for _, m := range g.file.Messages {
		messages = append(messages, g.dialect.NewMessageEmitter(m, g.cfg, g.namer, shorten, exts))
	}

	if g.cfg.Mode == ModeFull {
		g.emitVersionGuard(p)
	}

	for _, e := range enums {
		p.Print("\n")
		e.Declare(p)
	}
	for _, m := range messages {
		p.Print("\n")
		if err := m.Declare(p); err != nil {
			return err
		}
	}

	if g.cfg.Mode == ModeLite {
		return nil
	}

	if !exts.IsEmpty() {
		p.Print("\n// MARK: - Extension support defined in " + g.file.Name + ".\n")
		exts.DeclareAccessors(p)
		exts.DeclareRegistry(p)
		exts.DeclareRaw(p)
	}

	if g.file.HasDeclarations() {
		p.Print("\n// MARK: - Code below here is support for the SwiftProtobuf runtime.\n")
		fc := NewFileContext(g.file, g.cfg, g.namer)
		if fc.HasPackageBinding {
			p.Print("\nfileprivate let _protobuf_package = \"" + g.file.Package + "\"\n")
		}
		for _, e := range enums {
			p.Print("\n")
			e.RuntimeSupport(p, fc)
		}
		for _, m := range messages {
			p.Print("\n")
			m.RuntimeSupport(p, fc)
		}
	}

	return nil
}

// emitPreamble writes the generation banner and carries over the
// schema file's leading comment block. The accumulated text always
// ends with exactly one blank line.
func (g *FileGenerator) emitPreamble(p *Printer) {
	p.Print(fmt.Sprintf(bannerTemplate, strings.ToLower(g.cfg.Mode.String()), g.file.Name))

	comment, ok := g.file.CommentsAt(descriptor.EditionFieldNumber)
	if !ok {
		comment, ok = g.file.CommentsAt(descriptor.SyntaxFieldNumber)
	}
	if !ok {
		p.Print("\n")
		return
	}
	block := formatHeaderComment(comment)
	if !strings.HasSuffix(block, "\n\n") {
		block += "\n"
	}
	p.Print(block)
}

// formatHeaderComment renders detached comment blocks as plain
// comments and the leading block as documentation comments.
func formatHeaderComment(c descriptor.Comment) string {
	var b strings.Builder
	for _, detached := range c.Detached {
		for _, line := range commentLines(detached) {
			b.WriteString("//" + line + "\n")
		}
		b.WriteString("\n")
	}
	for _, line := range commentLines(c.Leading) {
		b.WriteString("///" + line + "\n")
	}
	return b.String()
}

func commentLines(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
}

// emitImports writes the standard-library, runtime-library, and
// dependency imports. It returns the number of dependency imports.
func (g *FileGenerator) emitImports(p *Printer) int {
	emitted := false
	if g.file.RequiresFoundation() {
		p.Print("import Foundation\n")
		emitted = true
	}
	if g.file.HasDeclarations() {
		if g.file.IsBundledRuntime() {
			p.Print("// 'import SwiftProtobuf' suppressed: this file is bundled with the runtime library.\n")
		} else {
			p.Print("import SwiftProtobuf\n")
		}
		emitted = true
	}
	deps := g.imports.ComputeImports(g.namer, g.cfg.ImportDirective, g.cfg.Visibility != VisibilityFileLocal)
	if len(deps) > 0 {
		if emitted {
			p.Print("\n")
		}
		for _, stmt := range deps {
			p.Print(stmt + "\n")
		}
	}
	return len(deps)
}

// emitVersionGuard pins the generated file to one runtime API version:
// the nested type fails to satisfy the version-tagged capability at
// compile time when the linked runtime does not match.
func (g *FileGenerator) emitVersionGuard(p *Printer) {
	v := RuntimeCompatibilityVersion
	p.Print("\n")
	p.Print(versionGuard)
	p.Print("fileprivate struct _GeneratedWithSwiftpbVersion: SwiftProtobuf.ProtobufAPIVersionCheck {\n")
	p.Indent()
	p.Print(fmt.Sprintf("struct _%d: SwiftProtobuf.ProtobufAPIVersion_%d {}\n", v, v))
	p.Print(fmt.Sprintf("typealias Version = _%d\n", v))
	p.Outdent()
	p.Print("}\n")
}
