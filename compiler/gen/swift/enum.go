package swift

import (
	"fmt"

	"github.com/protokit/swiftpb/compiler/descriptor"
	"github.com/protokit/swiftpb/compiler/gen"
)

// enumEmitter generates one enum declaration and its runtime
// conformance. The declared name is resolved once at construction so
// nested enums reuse the same emitter with their bare name.
type enumEmitter struct {
	enum  *descriptor.Enum
	cfg   *gen.Config
	namer *gen.Namer
	name  string
}

func newEnumEmitter(e *descriptor.Enum, cfg *gen.Config, n *gen.Namer, name string) *enumEmitter {
	return &enumEmitter{enum: e, cfg: cfg, namer: n, name: name}
}

// Declare implements gen.EnumEmitter. In lite mode the enum is a plain
// raw-value enum with no runtime conformance.
func (e *enumEmitter) Declare(p *gen.Printer) {
	vis := access(e.cfg)
	if e.cfg.Mode == gen.ModeLite {
		p.Print(vis + "enum " + e.name + ": Int, Swift.CaseIterable {\n")
	} else {
		p.Print(vis + "enum " + e.name + ": SwiftProtobuf.Enum, Swift.CaseIterable {\n")
	}
	p.Indent()
	if e.cfg.Mode == gen.ModeFull {
		p.Print(vis + "typealias RawValue = Int\n")
	}

	seen := make(map[int32]bool)
	for _, v := range e.enum.Values {
		if seen[v.Number] {
			// Aliases cannot become distinct cases: raw-value enums
			// reject repeated raw values, and the rawValue switch must
			// stay exhaustive.
			continue
		}
		seen[v.Number] = true
		if e.cfg.Mode == gen.ModeLite {
			p.Print(fmt.Sprintf("case %s = %d\n", e.namer.CaseName(v.Name), v.Number))
		} else {
			p.Print(fmt.Sprintf("case %s // = %d\n", e.namer.CaseName(v.Name), v.Number))
		}
	}

	if len(e.enum.Values) > 0 {
		p.Print("\n")
		p.Print(vis + "init() {\n")
		p.Indent()
		p.Print("self = ." + e.namer.CaseName(e.enum.Values[0].Name) + "\n")
		p.Outdent()
		p.Print("}\n")
	}

	if e.cfg.Mode == gen.ModeFull {
		e.declareRawValue(p, vis)
	}
	p.Outdent()
	p.Print("}\n")
}

// declareRawValue emits init?(rawValue:) and rawValue for the custom
// Enum conformance. Aliased values decode to the first case declared
// with their number.
func (e *enumEmitter) declareRawValue(p *gen.Printer, vis string) {
	p.Print("\n")
	p.Print(vis + "init?(rawValue: Int) {\n")
	p.Indent()
	p.Print("switch rawValue {\n")
	seen := make(map[int32]bool)
	for _, v := range e.enum.Values {
		if seen[v.Number] {
			continue
		}
		seen[v.Number] = true
		p.Print(fmt.Sprintf("case %d: self = .%s\n", v.Number, e.namer.CaseName(v.Name)))
	}
	p.Print("default: return nil\n")
	p.Print("}\n")
	p.Outdent()
	p.Print("}\n")

	p.Print("\n")
	p.Print(vis + "var rawValue: Int {\n")
	p.Indent()
	p.Print("switch self {\n")
	for i, v := range e.enum.Values {
		if e.isAlias(i) {
			continue
		}
		p.Print(fmt.Sprintf("case .%s: return %d\n", e.namer.CaseName(v.Name), v.Number))
	}
	p.Print("}\n")
	p.Outdent()
	p.Print("}\n")
}

func (e *enumEmitter) isAlias(idx int) bool {
	for i := 0; i < idx; i++ {
		if e.enum.Values[i].Number == e.enum.Values[idx].Number {
			return true
		}
	}
	return false
}

// RuntimeSupport implements gen.EnumEmitter: the proto-name mapping
// used by text and JSON serialization.
func (e *enumEmitter) RuntimeSupport(p *gen.Printer, fc *gen.FileContext) {
	vis := access(e.cfg)
	p.Print("extension " + e.name + ": SwiftProtobuf._ProtoNameProviding {\n")
	p.Indent()
	if len(e.enum.Values) == 0 {
		p.Print(vis + "static let _protobuf_nameMap = SwiftProtobuf._NameMap()\n")
	} else {
		p.Print(vis + "static let _protobuf_nameMap: SwiftProtobuf._NameMap = [\n")
		p.Indent()
		seen := make(map[int32]bool)
		for _, v := range e.enum.Values {
			if seen[v.Number] {
				continue
			}
			seen[v.Number] = true
			p.Print(fmt.Sprintf("%d: .same(proto: %q),\n", v.Number, v.Name))
		}
		p.Outdent()
		p.Print("]\n")
	}
	p.Outdent()
	p.Print("}\n")
}

var _ gen.EnumEmitter = (*enumEmitter)(nil)
