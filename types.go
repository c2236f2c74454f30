package minipar

import "strings"

// Kind is the closed set of Minipar types.
type Kind int

const (
	KindInvalid Kind = iota
	KindNumber
	KindString
	KindBool
	KindVoid
	KindFunc
	KindCChannel
	KindSChannel
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindFunc:
		return "func"
	case KindCChannel:
		return "c_channel"
	case KindSChannel:
		return "s_channel"
	default:
		return "invalid"
	}
}

// Type describes a resolved static type. FUNC additionally carries an
// ordered parameter-type list and a return type.
type Type struct {
	Kind    Kind
	Params  []Type // only meaningful when Kind == KindFunc
	Returns *Type  // only meaningful when Kind == KindFunc
}

func simple(k Kind) Type { return Type{Kind: k} }

var (
	TypeNumber  = simple(KindNumber)
	TypeString  = simple(KindString)
	TypeBool    = simple(KindBool)
	TypeVoid    = simple(KindVoid)
	TypeCChan   = simple(KindCChannel)
	TypeSChan   = simple(KindSChannel)
	TypeInvalid = simple(KindInvalid)
)

func FuncType(params []Type, ret Type) Type {
	return Type{Kind: KindFunc, Params: params, Returns: &ret}
}

// Equal reports structural equality, comparing the full parameter/return
// signature for FUNC types.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != KindFunc {
		return true
	}
	if len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	if (t.Returns == nil) != (o.Returns == nil) {
		return false
	}
	if t.Returns != nil && !t.Returns.Equal(*o.Returns) {
		return false
	}
	return true
}

// ZeroValue returns the value a non-VOID function implicitly returns when
// control falls off its body without an explicit return.
func (t Type) ZeroValue() Value {
	switch t.Kind {
	case KindNumber:
		return NumberValue(0)
	case KindString:
		return StringValue("")
	case KindBool:
		return BoolValue(false)
	default:
		return VoidValue()
	}
}

func (t Type) String() string {
	if t.Kind != KindFunc {
		return t.Kind.String()
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if t.Returns != nil {
		ret = t.Returns.String()
	}
	return "func(" + strings.Join(parts, ", ") + ") -> " + ret
}
