package gen

import "github.com/protokit/swiftpb/compiler/descriptor"

// =============================================================================
// Sub-emitter contracts
// =============================================================================

// FileContext is the orchestrator state handed to runtime-support
// phases. It is scoped to exactly one file and never shared.
type FileContext struct {
	// File is the schema file being generated.
	File *descriptor.File
	// Config are the generator options for this invocation.
	Config *Config
	// Namer resolves qualified identifiers for this file.
	Namer *Namer
	// HasPackageBinding reports whether the orchestrator emitted the
	// file-scope package-name binding.
	HasPackageBinding bool
}

// NewFileContext builds the runtime-support context for one file.
func NewFileContext(f *descriptor.File, cfg *Config, n *Namer) *FileContext {
	return &FileContext{
		File:              f,
		Config:            cfg,
		Namer:             n,
		HasPackageBinding: f.Package != "" && len(f.Messages) > 0,
	}
}

// EnumEmitter produces the text for one enum declaration.
type EnumEmitter interface {
	// Declare emits the enum declaration.
	Declare(p *Printer)
	// RuntimeSupport emits the enum's runtime conformances. Not called
	// in lite mode.
	RuntimeSupport(p *Printer, fc *FileContext)
}

// MessageEmitter produces the text for one message declaration,
// including its nested types.
type MessageEmitter interface {
	// Declare emits the message declaration. The first error returned
	// by any message emitter aborts the file.
	Declare(p *Printer) error
	// RuntimeSupport emits the message's runtime conformances. Not
	// called in lite mode.
	RuntimeSupport(p *Printer, fc *FileContext)
}

// ExtensionAggregator collects the extension fields of one file and
// emits their accessor, registry, and declaration sections.
type ExtensionAggregator interface {
	// Register adds one extension field declared in the file.
	Register(x *descriptor.Field)
	// IsEmpty reports whether no extensions were registered.
	IsEmpty() bool
	// DeclareAccessors emits per-message extension accessors.
	DeclareAccessors(p *Printer)
	// DeclareRegistry emits the per-file extension registry.
	DeclareRegistry(p *Printer)
	// DeclareRaw emits the raw extension declarations.
	DeclareRaw(p *Printer)
}

// Dialect constructs the sub-emitters for one target language. It is
// injected into the orchestrator so the core stays independent of any
// emitter package.
type Dialect interface {
	// Name returns the dialect name (e.g. "swift").
	Name() string
	// NewEnumEmitter builds the emitter for one top-level enum.
	NewEnumEmitter(e *descriptor.Enum, cfg *Config, n *Namer, shorten bool) EnumEmitter
	// NewMessageEmitter builds the emitter for one top-level message.
	NewMessageEmitter(m *descriptor.Message, cfg *Config, n *Namer, shorten bool, exts ExtensionAggregator) MessageEmitter
	// NewExtensionAggregator builds the file's extension aggregator.
	NewExtensionAggregator(f *descriptor.File, cfg *Config, n *Namer) ExtensionAggregator
}
