package minipar

import (
	"fmt"
	"strconv"
	"sync"
)

// ValueTag mirrors Kind for runtime values (VOID stands for Kind VOID; Go
// has no value for it beyond the zero-value sentinel below).
type ValueTag int

const (
	VNumber ValueTag = iota
	VString
	VBool
	VVoid
	VFunc
	VCChannel
	VSChannel
)

// Value is the tagged runtime representation: a 64-bit float for NUMBER,
// immutable text for STRING, a boolean, unit for VOID, a function closure,
// or a channel handle.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

func NumberValue(f float64) Value { return Value{Tag: VNumber, Data: f} }
func StringValue(s string) Value  { return Value{Tag: VString, Data: s} }
func BoolValue(b bool) Value      { return Value{Tag: VBool, Data: b} }
func VoidValue() Value            { return Value{Tag: VVoid} }
func FuncValue(c *Closure) Value  { return Value{Tag: VFunc, Data: c} }

func (v Value) Number() float64 { return v.Data.(float64) }
func (v Value) String_() string { return v.Data.(string) }
func (v Value) Bool() bool      { return v.Data.(bool) }

func (v Value) Type() Type {
	switch v.Tag {
	case VNumber:
		return TypeNumber
	case VString:
		return TypeString
	case VBool:
		return TypeBool
	case VVoid:
		return TypeVoid
	case VFunc:
		return v.Data.(*Closure).Type
	case VCChannel:
		return TypeCChan
	case VSChannel:
		return TypeSChan
	default:
		return TypeInvalid
	}
}

// Canonical renders v in the builtin print()/output() format: numbers
// without trailing zeros when integral, booleans as true/false, strings
// verbatim (no quoting).
func (v Value) Canonical() string {
	switch v.Tag {
	case VNumber:
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case VString:
		return v.Data.(string)
	case VBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VVoid:
		return ""
	case VFunc:
		return "<func>"
	case VCChannel, VSChannel:
		return "<channel>"
	default:
		return fmt.Sprintf("%v", v.Data)
	}
}

// Closure bundles a function's declaration with the environment in effect
// at its definition site (static scoping).
type Closure struct {
	Def  *FuncDef
	Env  *Env
	Type Type
}

// Env is a lexical environment frame. Frames form a parent-linked tree (not
// a stack) because closures may outlive the block that created them.
// table access is guarded by mu so that par's shared-by-reference siblings
// never race on the frame's map structure, per spec.md §9 "shared mutation
// across par".
type Env struct {
	parent *Env
	mu     sync.RWMutex
	table  map[string]*binding
}

// binding is a single slot; Value itself is never partially overwritten, so
// a read always observes either the prior or the new value, never a torn mix.
type binding struct {
	declaredType Type
	value        Value
}

// NewEnv creates a new frame with the given parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]*binding)}
}

// Define binds name in the current frame with its declared type and initial
// value, shadowing any outer binding of the same name.
func (e *Env) Define(name string, declared Type, v Value) {
	e.mu.Lock()
	e.table[name] = &binding{declaredType: declared, value: v}
	e.mu.Unlock()
}

// HasLocal reports whether name is bound directly in this frame, ignoring
// parent frames.
func (e *Env) HasLocal(name string) bool {
	e.mu.RLock()
	_, ok := e.table[name]
	e.mu.RUnlock()
	return ok
}

// Set writes v into the nearest frame (walking outward) that already binds
// name. It panics with a runtime error if no frame binds name — the parser's
// scope checking makes that unreachable for well-typed programs.
func (e *Env) Set(name string, v Value) {
	for f := e; f != nil; f = f.parent {
		f.mu.Lock()
		if b, ok := f.table[name]; ok {
			b.value = v
			f.mu.Unlock()
			return
		}
		f.mu.Unlock()
	}
	fail(fmt.Sprintf("undefined variable: %s", name))
}

// Get looks up the nearest visible binding for name. The value is read
// while still holding the frame's RLock, since Set mutates b.value under
// the write lock — releasing before the read would let a concurrent par
// sibling's Set tear the read (spec.md's no-torn-reads invariant).
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		f.mu.RLock()
		b, ok := f.table[name]
		if ok {
			v := b.value
			f.mu.RUnlock()
			return v, true
		}
		f.mu.RUnlock()
	}
	return Value{}, false
}
