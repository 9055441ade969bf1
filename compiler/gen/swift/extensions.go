package swift

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protokit/swiftpb/compiler/descriptor"
	"github.com/protokit/swiftpb/compiler/gen"
)

// extensionAggregator collects the file's extension fields and emits
// the three extension sections in registration order.
type extensionAggregator struct {
	cfg   *gen.Config
	namer *gen.Namer
	exts  []*descriptor.Field
}

// Register implements gen.ExtensionAggregator.
func (a *extensionAggregator) Register(x *descriptor.Field) {
	a.exts = append(a.exts, x)
}

// IsEmpty implements gen.ExtensionAggregator.
func (a *extensionAggregator) IsEmpty() bool {
	return len(a.exts) == 0
}

// DeclareAccessors implements gen.ExtensionAggregator. Extensions are
// grouped by extended message, groups ordered by first registration.
func (a *extensionAggregator) DeclareAccessors(p *gen.Printer) {
	vis := access(a.cfg)
	seen := make(map[string]bool)
	var order []string
	groups := make(map[string][]*descriptor.Field)
	for _, x := range a.exts {
		if !seen[x.Extendee] {
			seen[x.Extendee] = true
			order = append(order, x.Extendee)
		}
		groups[x.Extendee] = append(groups[x.Extendee], x)
	}

	for i, extendee := range order {
		if i > 0 {
			p.Print("\n")
		}
		p.Print("extension " + a.resolve(extendee) + " {\n")
		p.Indent()
		for j, x := range groups[extendee] {
			if j > 0 {
				p.Print("\n")
			}
			a.declareAccessor(p, vis, x)
		}
		p.Outdent()
		p.Print("}\n")
	}
}

func (a *extensionAggregator) declareAccessor(p *gen.Printer, vis string, x *descriptor.Field) {
	member := a.namer.MemberName(x.Name)
	decl := a.namer.ExtensionDeclName(x)
	typ, def, err := fieldType(x, a.namer)
	if err != nil {
		typ, def = "SwiftProtobuf.Google_Protobuf_Any?", "nil"
	}

	p.Print(vis + "var " + member + ": " + typ + " {\n")
	p.Indent()
	if def == "nil" {
		p.Print("get { return getExtensionValue(ext: " + decl + ") }\n")
		p.Print("set {\n")
		p.Indent()
		p.Print("if let v = newValue {\n")
		p.Indent()
		p.Print("setExtensionValue(ext: " + decl + ", value: v)\n")
		p.Outdent()
		p.Print("} else {\n")
		p.Indent()
		p.Print("clearExtensionValue(ext: " + decl + ")\n")
		p.Outdent()
		p.Print("}\n")
		p.Outdent()
		p.Print("}\n")
	} else {
		p.Print("get { return getExtensionValue(ext: " + decl + ") ?? " + def + " }\n")
		p.Print("set { setExtensionValue(ext: " + decl + ", value: newValue) }\n")
	}
	p.Outdent()
	p.Print("}\n")

	suffix := inflect.Camelize(strings.ToLower(x.Name))
	p.Print(vis + "var has" + suffix + ": Bool {\n")
	p.Indent()
	p.Print("return hasExtensionValue(ext: " + decl + ")\n")
	p.Outdent()
	p.Print("}\n")
	p.Print(vis + "mutating func clear" + suffix + "() {\n")
	p.Indent()
	p.Print("clearExtensionValue(ext: " + decl + ")\n")
	p.Outdent()
	p.Print("}\n")
}

// DeclareRegistry implements gen.ExtensionAggregator.
func (a *extensionAggregator) DeclareRegistry(p *gen.Printer) {
	vis := access(a.cfg)
	p.Print(vis + "let " + a.namer.RegistryName() + ": SwiftProtobuf.SimpleExtensionMap = [\n")
	p.Indent()
	for _, x := range a.exts {
		p.Print(a.namer.ExtensionDeclName(x) + ",\n")
	}
	p.Outdent()
	p.Print("]\n")
}

// DeclareRaw implements gen.ExtensionAggregator.
func (a *extensionAggregator) DeclareRaw(p *gen.Printer) {
	vis := access(a.cfg)
	for i, x := range a.exts {
		if i > 0 {
			p.Print("\n")
		}
		p.Print(vis + "let " + a.namer.ExtensionDeclName(x) + " = SwiftProtobuf.MessageExtension<" + a.fieldStorage(x) + ", " + a.resolve(x.Extendee) + ">(\n")
		p.Indent()
		p.Print(fmt.Sprintf("_protobuf_fieldNumber: %d,\n", x.Number))
		p.Print(fmt.Sprintf("fieldName: %q\n", a.namer.FullProtoName(x.Name)))
		p.Outdent()
		p.Print(")\n")
	}
}

// fieldStorage returns the runtime extension-field type that carries
// the extension's value.
func (a *extensionAggregator) fieldStorage(x *descriptor.Field) string {
	switch x.Type {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE,
		descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return "SwiftProtobuf.OptionalMessageExtensionField<" + a.resolve(x.TypeName) + ">"
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "SwiftProtobuf.OptionalEnumExtensionField<" + a.resolve(x.TypeName) + ">"
	default:
		codec := "SwiftProtobuf.Protobuf" + codecName(x.Type)
		if x.Repeated {
			return "SwiftProtobuf.RepeatedExtensionField<" + codec + ">"
		}
		return "SwiftProtobuf.OptionalExtensionField<" + codec + ">"
	}
}

// resolve maps a fully-qualified proto type name to its Swift
// spelling, falling back to the trimmed raw name for malformed input.
func (a *extensionAggregator) resolve(typeName string) string {
	s, err := a.namer.ResolveTypeName(typeName)
	if err != nil {
		return strings.TrimPrefix(typeName, ".")
	}
	return s
}

var _ gen.ExtensionAggregator = (*extensionAggregator)(nil)
