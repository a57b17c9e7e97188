// Package types defines the uC type system.
//
// Each base type is a flyweight singleton carrying the sets of operator
// spellings it admits. Type equality is pointer identity. A resolved type is
// an ordered TypeList of singletons read outside-in: a pointer to int is
// [PTR, INT], an array of pointer to char is [ARRAY, PTR, CHAR].
package types

import "strings"

// OpSet is a set of operator spellings admitted by a type.
type OpSet map[string]bool

// NewOpSet builds an operator set from its members.
func NewOpSet(ops ...string) OpSet {
	s := make(OpSet, len(ops))
	for _, op := range ops {
		s[op] = true
	}
	return s
}

// Contains reports whether op is in the set.
func (s OpSet) Contains(op string) bool {
	return s[op]
}

// Type is one of the eight uC base type singletons.
type Type struct {
	Name      string
	UnaryOps  OpSet
	BinaryOps OpSet
	RelOps    OpSet
	AssignOps OpSet
}

func (t *Type) String() string {
	return t.Name
}

// The eight singletons. Operator sets follow the language definition:
// arithmetic on int/float, concatenation on char/string, pointer and
// address-of on everything addressable.
var (
	INT = &Type{
		Name:      "int",
		UnaryOps:  NewOpSet("-", "+", "--", "++", "p--", "p++", "*", "&"),
		BinaryOps: NewOpSet("+", "-", "*", "/", "%"),
		RelOps:    NewOpSet("==", "!=", "<", ">", "<=", ">="),
		AssignOps: NewOpSet("=", "+=", "-=", "*=", "/=", "%="),
	}

	FLOAT = &Type{
		Name:      "float",
		UnaryOps:  NewOpSet("-", "+", "*", "&"),
		BinaryOps: NewOpSet("+", "-", "*", "/", "%"),
		RelOps:    NewOpSet("==", "!=", "<", ">", "<=", ">="),
		AssignOps: NewOpSet("=", "+=", "-=", "*=", "/=", "%="),
	}

	CHAR = &Type{
		Name:      "char",
		UnaryOps:  NewOpSet("*", "&"),
		BinaryOps: NewOpSet("+"),
		RelOps:    NewOpSet("==", "!=", "&&", "||"),
		AssignOps: NewOpSet("="),
	}

	BOOL = &Type{
		Name:     "bool",
		UnaryOps: NewOpSet("!", "*", "&"),
		RelOps:   NewOpSet("==", "!=", "&&", "||"),
	}

	VOID = &Type{
		Name:     "void",
		UnaryOps: NewOpSet("*", "&"),
	}

	ARRAY = &Type{
		Name:     "array",
		UnaryOps: NewOpSet("*", "&"),
		RelOps:   NewOpSet("==", "!="),
	}

	PTR = &Type{
		Name:     "ptr",
		UnaryOps: NewOpSet("*", "&"),
		RelOps:   NewOpSet("==", "!="),
	}

	STRING = &Type{
		Name:      "string",
		BinaryOps: NewOpSet("+"),
		RelOps:    NewOpSet("==", "!="),
	}
)

// byName maps type spellings to their singletons.
var byName = map[string]*Type{
	"int":    INT,
	"float":  FLOAT,
	"char":   CHAR,
	"bool":   BOOL,
	"void":   VOID,
	"array":  ARRAY,
	"ptr":    PTR,
	"string": STRING,
}

// ByName returns the singleton for a type spelling, or nil if unknown.
func ByName(name string) *Type {
	return byName[name]
}

// All returns the name-to-singleton table, used to seed the root scope.
func All() map[string]*Type {
	return byName
}

// TypeList is a resolved type: an ordered list of singletons, outer
// aggregate tags (ARRAY, PTR) first, scalar tag last.
type TypeList []*Type

// Equal reports element-wise identity of two type lists.
func (tl TypeList) Equal(other TypeList) bool {
	if len(tl) != len(other) {
		return false
	}
	for i, t := range tl {
		if t != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the list.
func (tl TypeList) Clone() TypeList {
	out := make(TypeList, len(tl))
	copy(out, tl)
	return out
}

// Outer returns the outermost tag, or nil for an empty list.
func (tl TypeList) Outer() *Type {
	if len(tl) == 0 {
		return nil
	}
	return tl[0]
}

// Leaf returns the innermost (scalar) tag, or nil for an empty list.
func (tl TypeList) Leaf() *Type {
	if len(tl) == 0 {
		return nil
	}
	return tl[len(tl)-1]
}

// Prepend returns the list with t added as the new outermost tag.
func (tl TypeList) Prepend(t *Type) TypeList {
	out := make(TypeList, 0, len(tl)+1)
	out = append(out, t)
	out = append(out, tl...)
	return out
}

// PopOuter returns the list without its outermost tag.
func (tl TypeList) PopOuter() TypeList {
	if len(tl) == 0 {
		return tl
	}
	return tl[1:].Clone()
}

func (tl TypeList) String() string {
	names := make([]string, len(tl))
	for i, t := range tl {
		names[i] = t.Name
	}
	return strings.Join(names, " ")
}
