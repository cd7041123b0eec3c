package symbols

// TypeTag is a provisional classification of a bound value's shape, used to
// seed a symbol before inference runs.
type TypeTag uint8

const (
	TagUnknown TypeTag = iota
	TagNone
	TagBool
	TagInt
	TagFloat
	TagComplex
	TagStr
	TagBytes
	TagTuple
	TagList
	TagDict
	TagSet
	TagGenerator
	TagCall
	TagName
	TagAttribute
	TagSubscript
	TagLambda
	TagFunction
	TagClass
	TagModule
	TagOperation
	TagAwait
	TagYield
	TagConditional
	TagFString
	TagParameter
	TagDeclared
)

var tagNames = [...]string{
	TagUnknown:     "unknown",
	TagNone:        "none",
	TagBool:        "bool",
	TagInt:         "int",
	TagFloat:       "float",
	TagComplex:     "complex",
	TagStr:         "str",
	TagBytes:       "bytes",
	TagTuple:       "tuple",
	TagList:        "list",
	TagDict:        "dict",
	TagSet:         "set",
	TagGenerator:   "generator",
	TagCall:        "call",
	TagName:        "name",
	TagAttribute:   "attribute",
	TagSubscript:   "subscript",
	TagLambda:      "lambda",
	TagFunction:    "function",
	TagClass:       "class",
	TagModule:      "module",
	TagOperation:   "operation",
	TagAwait:       "await",
	TagYield:       "yield",
	TagConditional: "conditional",
	TagFString:     "fstring",
	TagParameter:   "parameter",
	TagDeclared:    "declared",
}

func (t TypeTag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// IsLiteral reports whether the tag came from a literal constant or display.
func (t TypeTag) IsLiteral() bool {
	switch t {
	case TagNone, TagBool, TagInt, TagFloat, TagComplex, TagStr, TagBytes,
		TagTuple, TagList, TagDict, TagSet, TagFString:
		return true
	default:
		return false
	}
}
