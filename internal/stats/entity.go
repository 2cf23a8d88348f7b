package stats

// EntityKind tags the variant held by an Entity.
type EntityKind uint8

const (
	EntityNone EntityKind = iota
	EntityDecl
	EntityExpr
	EntityFunction
)

// String returns the string representation of EntityKind.
func (k EntityKind) String() string {
	switch k {
	case EntityNone:
		return "none"
	case EntityDecl:
		return "decl"
	case EntityExpr:
		return "expr"
	case EntityFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Entity is a non-owning back-reference into the host program's object
// graph, used purely to label trace events. The engine never dereferences
// Ref; rendering is deferred to a Resolver at serialization time.
type Entity struct {
	Kind EntityKind
	Ref  any
}

// Resolver renders Entities when the trace is serialized. Either method
// may return "" when no useful rendition exists.
type Resolver interface {
	EntityName(Entity) string
	EntityRange(Entity) string
}

// nopResolver renders every entity as empty.
type nopResolver struct{}

func (nopResolver) EntityName(Entity) string  { return "" }
func (nopResolver) EntityRange(Entity) string { return "" }
