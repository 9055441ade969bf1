package swift

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protokit/swiftpb/compiler/descriptor"
	"github.com/protokit/swiftpb/compiler/gen"
)

// messageEmitter generates one message declaration, its nested types,
// and their runtime conformances.
type messageEmitter struct {
	msg   *descriptor.Message
	cfg   *gen.Config
	namer *gen.Namer
	// swiftName is the fully-qualified Swift name ("My_Pkg_Outer.Inner").
	swiftName string
	// declName is the name spelled at the declaration site; bare for
	// nested types.
	declName string
	// protoName is the dotted proto name relative to the package.
	protoName string
}

func newMessageEmitter(m *descriptor.Message, cfg *gen.Config, n *gen.Namer, swiftName, protoName string) *messageEmitter {
	return &messageEmitter{
		msg:       m,
		cfg:       cfg,
		namer:     n,
		swiftName: swiftName,
		declName:  swiftName,
		protoName: protoName,
	}
}

func (m *messageEmitter) nested(child *descriptor.Message) *messageEmitter {
	e := newMessageEmitter(child, m.cfg, m.namer, m.swiftName+"."+child.Name, m.protoName+"."+child.Name)
	e.declName = child.Name
	return e
}

// Declare implements gen.MessageEmitter. The first unresolvable field
// type aborts with a DeclarationError.
func (m *messageEmitter) Declare(p *gen.Printer) error {
	vis := access(m.cfg)
	p.Print(vis + "struct " + m.declName + ": Sendable {\n")
	p.Indent()

	for _, f := range m.msg.Fields {
		typ, def, err := fieldType(f, m.namer)
		if err != nil {
			p.Outdent()
			return gen.NewDeclarationError(m.namer.File().Name, m.protoName+"."+f.Name, "cannot resolve field type", err)
		}
		p.Print(vis + "var " + m.namer.MemberName(f.Name) + ": " + typ + " = " + def + "\n")
	}

	if m.cfg.Mode == gen.ModeFull {
		if len(m.msg.Fields) > 0 {
			p.Print("\n")
		}
		p.Print(vis + "var unknownFields = SwiftProtobuf.UnknownStorage()\n")
	}
	p.Print("\n")
	p.Print(vis + "init() {}\n")

	for _, e := range m.msg.Enums {
		p.Print("\n")
		newEnumEmitter(e, m.cfg, m.namer, e.Name).Declare(p)
	}
	for _, child := range m.msg.Messages {
		p.Print("\n")
		if err := m.nested(child).Declare(p); err != nil {
			p.Outdent()
			return err
		}
	}

	p.Outdent()
	p.Print("}\n")
	return nil
}

// RuntimeSupport implements gen.MessageEmitter: the Message
// conformance with name mapping, field decoding, and traversal, for
// this message and every nested type.
func (m *messageEmitter) RuntimeSupport(p *gen.Printer, fc *gen.FileContext) {
	vis := access(m.cfg)
	p.Print("extension " + m.swiftName + ": SwiftProtobuf.Message, SwiftProtobuf._MessageImplementationBase, SwiftProtobuf._ProtoNameProviding {\n")
	p.Indent()

	if fc.HasPackageBinding {
		p.Print(vis + "static let protoMessageName: String = _protobuf_package + \"." + m.protoName + "\"\n")
	} else {
		p.Print(vis + "static let protoMessageName: String = \"" + m.protoName + "\"\n")
	}
	m.emitNameMap(p, vis)
	m.emitDecode(p, vis)
	m.emitTraverse(p, vis)

	p.Outdent()
	p.Print("}\n")

	for _, e := range m.msg.Enums {
		p.Print("\n")
		newEnumEmitter(e, m.cfg, m.namer, m.swiftName+"."+e.Name).RuntimeSupport(p, fc)
	}
	for _, child := range m.msg.Messages {
		p.Print("\n")
		m.nested(child).RuntimeSupport(p, fc)
	}
}

func (m *messageEmitter) emitNameMap(p *gen.Printer, vis string) {
	if len(m.msg.Fields) == 0 {
		p.Print(vis + "static let _protobuf_nameMap = SwiftProtobuf._NameMap()\n")
		return
	}
	p.Print(vis + "static let _protobuf_nameMap: SwiftProtobuf._NameMap = [\n")
	p.Indent()
	for _, f := range m.msg.Fields {
		p.Print(fmt.Sprintf("%d: .same(proto: %q),\n", f.Number, f.Name))
	}
	p.Outdent()
	p.Print("]\n")
}

func (m *messageEmitter) emitDecode(p *gen.Printer, vis string) {
	p.Print("\n")
	p.Print(vis + "mutating func decodeMessage<D: SwiftProtobuf.Decoder>(decoder: inout D) throws {\n")
	p.Indent()
	if len(m.msg.Fields) == 0 {
		p.Print("while let _ = try decoder.nextFieldNumber() {}\n")
	} else {
		p.Print("while let fieldNumber = try decoder.nextFieldNumber() {\n")
		p.Indent()
		p.Print("switch fieldNumber {\n")
		for _, f := range m.msg.Fields {
			card := "Singular"
			if f.Repeated {
				card = "Repeated"
			}
			p.Print(fmt.Sprintf("case %d: try decoder.decode%s%sField(value: &self.%s)\n",
				f.Number, card, codecName(f.Type), m.namer.MemberName(f.Name)))
		}
		p.Print("default: break\n")
		p.Print("}\n")
		p.Outdent()
		p.Print("}\n")
	}
	p.Outdent()
	p.Print("}\n")
}

func (m *messageEmitter) emitTraverse(p *gen.Printer, vis string) {
	p.Print("\n")
	p.Print(vis + "func traverse<V: SwiftProtobuf.Visitor>(visitor: inout V) throws {\n")
	p.Indent()
	for _, f := range m.msg.Fields {
		member := m.namer.MemberName(f.Name)
		switch {
		case f.Repeated:
			p.Print(fmt.Sprintf("if !self.%s.isEmpty { try visitor.visitRepeated%sField(value: self.%s, fieldNumber: %d) }\n",
				member, codecName(f.Type), member, f.Number))
		case f.Type == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE ||
			f.Type == descriptorpb.FieldDescriptorProto_TYPE_GROUP:
			p.Print(fmt.Sprintf("if let v = self.%s { try visitor.visitSingularMessageField(value: v, fieldNumber: %d) }\n",
				member, f.Number))
		default:
			p.Print(fmt.Sprintf("if %s { try visitor.visitSingular%sField(value: self.%s, fieldNumber: %d) }\n",
				emptyCheck(f, member), codecName(f.Type), member, f.Number))
		}
	}
	p.Print("try unknownFields.traverse(visitor: &visitor)\n")
	p.Outdent()
	p.Print("}\n")
}

var _ gen.MessageEmitter = (*messageEmitter)(nil)
