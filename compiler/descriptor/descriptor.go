// Package descriptor wraps compiled protobuf file descriptors in an
// immutable, typed object model consumed by the code generator.
//
// A File is built once from a descriptorpb.FileDescriptorProto and is
// read-only afterwards: declaration order is preserved, options are
// exposed as struct fields rather than keyed lookups, and source
// comments are indexed by their structural field path.
package descriptor

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Field numbers of FileDescriptorProto used as structural comment paths.
const (
	SyntaxFieldNumber  = 12
	EditionFieldNumber = 14
)

// bundledRuntimePrefix marks descriptor files that ship inside the
// generated-code runtime itself. Generating a runtime import for them
// would create a self-import.
const bundledRuntimePrefix = "google/protobuf/"

// Options holds the recognized file-level options.
type Options struct {
	// SwiftPrefix is the configured type-name prefix, or empty.
	SwiftPrefix string
}

// File is the immutable model of one compiled schema file.
type File struct {
	// Name is the slash-separated proto path (e.g. "a/b/c.proto").
	Name string
	// Package is the proto package, possibly empty.
	Package string
	// Syntax is "proto2", "proto3" or "editions".
	Syntax string
	// Edition is the declared edition when Syntax is "editions".
	Edition string
	// Options are the recognized file options.
	Options Options
	// Enums are the top-level enums in declaration order.
	Enums []*Enum
	// Messages are the top-level messages in declaration order.
	Messages []*Message
	// Extensions are the file-level extension fields in declaration order.
	Extensions []*Field
	// Dependencies are the proto paths this file imports.
	Dependencies []string
	// PublicDependencies are indexes into Dependencies re-exported publicly.
	PublicDependencies []int32

	services int
	comments map[string]*Comment
}

// Enum is one enum declaration.
type Enum struct {
	// Name is the bare proto name.
	Name string
	// Values are the enum constants in declaration order.
	Values []*EnumValue
	// Parent is the enclosing message, or nil for top-level enums.
	Parent *Message
}

// EnumValue is one enum constant.
type EnumValue struct {
	Name   string
	Number int32
}

// Message is one message declaration.
type Message struct {
	// Name is the bare proto name.
	Name string
	// Fields are the regular fields in declaration order.
	Fields []*Field
	// Messages are nested message declarations.
	Messages []*Message
	// Enums are nested enum declarations.
	Enums []*Enum
	// Extensions are extension fields declared inside this message.
	Extensions []*Field
	// Parent is the enclosing message, or nil for top-level messages.
	Parent *Message
}

// Field is one field or extension declaration.
type Field struct {
	Name     string
	Number   int32
	Type     descriptorpb.FieldDescriptorProto_Type
	Repeated bool
	// TypeName is the fully-qualified referenced type for message and
	// enum fields (leading dot form), empty otherwise.
	TypeName string
	// Extendee is the fully-qualified extended message for extension
	// fields, empty for regular fields.
	Extendee string
}

// New builds the file model from a compiled descriptor. The descriptor
// is not retained; the returned File owns all derived state.
func New(fd *descriptorpb.FileDescriptorProto) *File {
	f := &File{
		Name:               fd.GetName(),
		Package:            fd.GetPackage(),
		Syntax:             fd.GetSyntax(),
		Options:            Options{SwiftPrefix: fd.GetOptions().GetSwiftPrefix()},
		Dependencies:       fd.GetDependency(),
		PublicDependencies: fd.GetPublicDependency(),
		services:           len(fd.GetService()),
		comments:           indexComments(fd.GetSourceCodeInfo()),
	}
	if f.Syntax == "" {
		f.Syntax = "proto2"
	}
	if fd.Edition != nil {
		f.Edition = fd.GetEdition().String()
	}
	for _, ed := range fd.GetEnumType() {
		f.Enums = append(f.Enums, newEnum(ed, nil))
	}
	for _, md := range fd.GetMessageType() {
		f.Messages = append(f.Messages, newMessage(md, nil))
	}
	for _, xd := range fd.GetExtension() {
		f.Extensions = append(f.Extensions, newField(xd))
	}
	return f
}

func newEnum(ed *descriptorpb.EnumDescriptorProto, parent *Message) *Enum {
	e := &Enum{Name: ed.GetName(), Parent: parent}
	for _, vd := range ed.GetValue() {
		e.Values = append(e.Values, &EnumValue{Name: vd.GetName(), Number: vd.GetNumber()})
	}
	return e
}

func newMessage(md *descriptorpb.DescriptorProto, parent *Message) *Message {
	m := &Message{Name: md.GetName(), Parent: parent}
	for _, fd := range md.GetField() {
		m.Fields = append(m.Fields, newField(fd))
	}
	for _, nd := range md.GetNestedType() {
		m.Messages = append(m.Messages, newMessage(nd, m))
	}
	for _, ed := range md.GetEnumType() {
		m.Enums = append(m.Enums, newEnum(ed, m))
	}
	for _, xd := range md.GetExtension() {
		m.Extensions = append(m.Extensions, newField(xd))
	}
	return m
}

func newField(fd *descriptorpb.FieldDescriptorProto) *Field {
	return &Field{
		Name:     fd.GetName(),
		Number:   fd.GetNumber(),
		Type:     fd.GetType(),
		Repeated: fd.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
		TypeName: fd.GetTypeName(),
		Extendee: fd.GetExtendee(),
	}
}

// HasDeclarations reports whether the file declares at least one enum,
// top-level message, or file-level extension.
func (f *File) HasDeclarations() bool {
	return len(f.Enums) > 0 || len(f.Messages) > 0 || len(f.Extensions) > 0
}

// ServiceCount returns the number of declared services.
func (f *File) ServiceCount() int {
	return f.services
}

// IsBundledRuntime reports whether this file is part of the runtime
// library bundle shipped with the generated-code support module.
func (f *File) IsBundledRuntime() bool {
	return strings.HasPrefix(f.Name, bundledRuntimePrefix)
}

// RequiresFoundation reports whether any declared type needs the
// platform standard library (a bytes-typed field maps to Data).
func (f *File) RequiresFoundation() bool {
	for _, x := range f.Extensions {
		if x.Type == descriptorpb.FieldDescriptorProto_TYPE_BYTES {
			return true
		}
	}
	for _, m := range f.Messages {
		if m.requiresFoundation() {
			return true
		}
	}
	return false
}

func (m *Message) requiresFoundation() bool {
	for _, fl := range append(append([]*Field{}, m.Fields...), m.Extensions...) {
		if fl.Type == descriptorpb.FieldDescriptorProto_TYPE_BYTES {
			return true
		}
	}
	for _, n := range m.Messages {
		if n.requiresFoundation() {
			return true
		}
	}
	return false
}
