package ast

import (
	"encoding/json"
	"fmt"
)

// Type is a type annotation. Primitive types are closed enums; anything
// else is a reference to a user-defined circuit or alias by name, which is
// resolved by later phases.
type Type interface {
	typeNode()
	String() string
}

// PrimitiveType enumerates the non-integer primitive types.
type PrimitiveType int

const (
	TypeField PrimitiveType = iota
	TypeGroup
	TypeAddress
	TypeBoolean
	TypeChar
)

var primitiveNames = [...]string{
	TypeField:   "field",
	TypeGroup:   "group",
	TypeAddress: "address",
	TypeBoolean: "bool",
	TypeChar:    "char",
}

func (t PrimitiveType) typeNode() {}
func (t PrimitiveType) String() string {
	if int(t) < len(primitiveNames) {
		return primitiveNames[t]
	}
	return fmt.Sprintf("PrimitiveType(%d)", int(t))
}

// MarshalText encodes the type by its source spelling.
func (t PrimitiveType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// IntegerType enumerates the fixed-width integer types.
type IntegerType int

const (
	I8 IntegerType = iota
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
)

var integerNames = [...]string{
	I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128",
}

func (t IntegerType) typeNode() {}
func (t IntegerType) String() string {
	if int(t) < len(integerNames) {
		return integerNames[t]
	}
	return fmt.Sprintf("IntegerType(%d)", int(t))
}

// MarshalText encodes the type by its source spelling.
func (t IntegerType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// IsSigned reports whether the integer type is signed.
func (t IntegerType) IsSigned() bool { return t <= I128 }

// BitWidth returns the width of the integer type in bits.
func (t IntegerType) BitWidth() int {
	return 8 << (int(t) % 5)
}

// IdentifierType references a user-defined type by name.
type IdentifierType struct {
	Identifier *Identifier
}

func (t *IdentifierType) typeNode()      {}
func (t *IdentifierType) String() string { return t.Identifier.Name }

func (t *IdentifierType) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Identifier *Identifier `json:"identifier"`
	}{"Identifier", t.Identifier})
}
