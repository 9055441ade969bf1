// Package swift implements the Swift sub-emitters for the generation
// core: one emitter per enum, one per message, and the file's extension
// aggregator. The orchestrator in compiler/gen drives them through the
// gen.Dialect interface.
package swift

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protokit/swiftpb/compiler/descriptor"
	"github.com/protokit/swiftpb/compiler/gen"
)

// Dialect constructs the Swift sub-emitters.
type Dialect struct{}

// NewDialect creates the Swift dialect.
func NewDialect() Dialect {
	return Dialect{}
}

// Name implements gen.Dialect.
func (Dialect) Name() string { return "swift" }

// NewEnumEmitter implements gen.Dialect.
func (Dialect) NewEnumEmitter(e *descriptor.Enum, cfg *gen.Config, n *gen.Namer, shorten bool) gen.EnumEmitter {
	return newEnumEmitter(e, cfg, n, n.TopLevelName(e.Name, shorten))
}

// NewMessageEmitter implements gen.Dialect.
func (Dialect) NewMessageEmitter(m *descriptor.Message, cfg *gen.Config, n *gen.Namer, shorten bool, exts gen.ExtensionAggregator) gen.MessageEmitter {
	return newMessageEmitter(m, cfg, n, n.TopLevelName(m.Name, shorten), m.Name)
}

// NewExtensionAggregator implements gen.Dialect.
func (Dialect) NewExtensionAggregator(f *descriptor.File, cfg *gen.Config, n *gen.Namer) gen.ExtensionAggregator {
	return &extensionAggregator{cfg: cfg, namer: n}
}

var _ gen.Dialect = Dialect{}

// access returns the access-modifier spelling for generated
// declarations, including the trailing space.
func access(cfg *gen.Config) string {
	if cfg.Visibility == gen.VisibilityPublic {
		return "public "
	}
	return ""
}

// scalarType maps a proto scalar field type to its Swift type.
func scalarType(t descriptorpb.FieldDescriptorProto_Type) (string, bool) {
	switch t {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "Double", true
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "Float", true
	case descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "Int64", true
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "UInt64", true
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return "Int32", true
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "UInt32", true
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "Bool", true
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "String", true
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "Data", true
	default:
		return "", false
	}
}

// codecName maps a proto field type to the runtime codec suffix used
// by decode and visit calls (e.g. decodeSingularInt32Field).
func codecName(t descriptorpb.FieldDescriptorProto_Type) string {
	switch t {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "Double"
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "Float"
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return "Int64"
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "SInt64"
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "SFixed64"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return "UInt64"
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "Fixed64"
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return "Int32"
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return "SInt32"
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return "SFixed32"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return "UInt32"
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "Fixed32"
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "Bool"
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "String"
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "Bytes"
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "Enum"
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return "Group"
	default:
		return "Message"
	}
}

// fieldType resolves the Swift type and default-value spelling of one
// field. Message fields are optional; enum fields default to the
// generated init().
func fieldType(f *descriptor.Field, n *gen.Namer) (typ, def string, err error) {
	switch f.Type {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE,
		descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		typ, err = n.ResolveTypeName(f.TypeName)
		if err != nil {
			return "", "", err
		}
		if f.Repeated {
			return "[" + typ + "]", "[]", nil
		}
		return typ + "?", "nil", nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		typ, err = n.ResolveTypeName(f.TypeName)
		if err != nil {
			return "", "", err
		}
		if f.Repeated {
			return "[" + typ + "]", "[]", nil
		}
		return typ, ".init()", nil
	default:
		typ, ok := scalarType(f.Type)
		if !ok {
			return "", "", fmt.Errorf("unsupported field type %v for %q", f.Type, f.Name)
		}
		if f.Repeated {
			return "[" + typ + "]", "[]", nil
		}
		return typ, scalarDefault(typ), nil
	}
}

func scalarDefault(swiftType string) string {
	switch swiftType {
	case "String":
		return "String()"
	case "Data":
		return "Data()"
	case "Bool":
		return "false"
	default:
		return "0"
	}
}

// emptyCheck returns the traverse-phase condition for skipping a field
// that still holds its default value.
func emptyCheck(f *descriptor.Field, member string) string {
	if f.Repeated {
		return "!self." + member + ".isEmpty"
	}
	switch f.Type {
	case descriptorpb.FieldDescriptorProto_TYPE_STRING,
		descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "!self." + member + ".isEmpty"
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "self." + member + " != false"
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "self." + member + " != .init()"
	default:
		return "self." + member + " != 0"
	}
}
