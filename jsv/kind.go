package jsv

import "fmt"

// Kind is the tag of a node.
type Kind uint8

const (
	UndefinedKind Kind = iota
	NullKind
	BoolKind
	IntKind
	FloatKind
	StringKind
	ArrayKind
	ObjectKind
	NameKind
	FunctionKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		UndefinedKind: "Undefined",
		NullKind:      "Null",
		BoolKind:      "Bool",
		IntKind:       "Int",
		FloatKind:     "Float",
		StringKind:    "String",
		ArrayKind:     "Array",
		ObjectKind:    "Object",
		NameKind:      "Name",
		FunctionKind:  "Function",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Undefined": UndefinedKind,
		"Null":      NullKind,
		"Bool":      BoolKind,
		"Int":       IntKind,
		"Float":     FloatKind,
		"String":    StringKind,
		"Array":     ArrayKind,
		"Object":    ObjectKind,
		"Name":      NameKind,
		"Function":  FunctionKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		UndefinedKind,
		NullKind,
		BoolKind,
		IntKind,
		FloatKind,
		StringKind,
		ArrayKind,
		ObjectKind,
		NameKind,
		FunctionKind,
	}
}

// IsLeaf reports whether nodes of kind k carry a scalar payload and no
// children.
func (k Kind) IsLeaf() bool {
	switch k {
	case ArrayKind, ObjectKind, NameKind:
		return false
	default:
		return true
	}
}

func (k Kind) IsContainer() bool {
	return k == ArrayKind || k == ObjectKind
}

func (k Kind) IsNumeric() bool {
	return k == IntKind || k == FloatKind
}
