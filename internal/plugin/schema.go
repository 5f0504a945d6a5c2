package plugin

import "github.com/zclconf/go-cty/cty"

// Kind identifies what a schema node describes.
type Kind int

const (
	// KindAny accepts any value. Fields of this kind have no UI projection.
	KindAny Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindEnum
	KindArray
	KindObject

	// Wrapper kinds. They chain to the wrapped node via Inner and modify
	// presence semantics rather than value shape.
	KindOptional
	KindNullable
	KindDefault
)

// Node is one node of a configuration schema. Base kinds describe a value
// shape; wrapper kinds (Optional, Nullable, Default) form a chain around a
// base node via Inner.
type Node struct {
	Kind        Kind
	Inner       *Node     // wrapper kinds only
	Default     cty.Value // KindDefault only
	Format      string    // KindString refinement: "", "email" or "url"
	Options     []string  // KindEnum: permitted values, in declared order
	Elem        *Node     // KindArray: element schema, nil for untyped arrays
	Fields      *Object   // KindObject: nested fields, nil for free-form objects
	Description string
}

// Object is an ordered set of named schema fields. Order is the declaration
// order and is preserved through introspection.
type Object struct {
	Fields []Field
}

// Field is one named property of an Object.
type Field struct {
	Name   string
	Schema *Node
}

// NewObject builds an Object from fields in declaration order.
func NewObject(fields ...Field) *Object {
	return &Object{Fields: fields}
}

// F is a shorthand Field constructor.
func F(name string, schema *Node) Field {
	return Field{Name: name, Schema: schema}
}

// --- Base node constructors ---

func Any() *Node    { return &Node{Kind: KindAny} }
func String() *Node { return &Node{Kind: KindString} }
func Email() *Node  { return &Node{Kind: KindString, Format: "email"} }
func URL() *Node    { return &Node{Kind: KindString, Format: "url"} }
func Number() *Node { return &Node{Kind: KindNumber} }
func Bool() *Node   { return &Node{Kind: KindBool} }
func Date() *Node   { return &Node{Kind: KindDate} }

func Enum(opts ...string) *Node {
	return &Node{Kind: KindEnum, Options: opts}
}

func Array(elem *Node) *Node { return &Node{Kind: KindArray, Elem: elem} }

func ObjectOf(o *Object) *Node {
	return &Node{Kind: KindObject, Fields: o}
}

// --- Wrappers ---

// Optional marks the field as omittable. The wrapper is the outermost layer
// by convention; introspection derives `required` from its presence.
func (n *Node) Optional() *Node {
	return &Node{Kind: KindOptional, Inner: n}
}

// Nullable permits an explicit null value for the field.
func (n *Node) Nullable() *Node {
	return &Node{Kind: KindNullable, Inner: n}
}

// WithDefault attaches a static default applied when the field is absent.
// A defaulted field without an Optional wrapper still reports required=true
// to introspection: the schema always produces a value, but the form still
// shows the field.
func (n *Node) WithDefault(v cty.Value) *Node {
	return &Node{Kind: KindDefault, Inner: n, Default: v}
}

// Describe sets the free-text description on this node and returns it.
// When a wrapper and its base both carry a description, the outer one wins.
func (n *Node) Describe(s string) *Node {
	n.Description = s
	return n
}

// IsWrapper reports whether the node modifies presence semantics rather
// than describing a value shape.
func (n *Node) IsWrapper() bool {
	switch n.Kind {
	case KindOptional, KindNullable, KindDefault:
		return true
	}
	return false
}

// Base strips all wrapper layers and returns the underlying base node.
func (n *Node) Base() *Node {
	for n.IsWrapper() {
		n = n.Inner
	}
	return n
}
