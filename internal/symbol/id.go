// Package symbol defines the data model shared by every stage of the
// indexer: the symbol identity, the records produced by parsers, and the
// edges produced by the graph builder.
package symbol

import (
	"fmt"
	"strings"
)

// Kind enumerates the symbol kinds the extractor can produce.
type Kind string

const (
	KindFunction   Kind = "function"
	KindMethod     Kind = "method"
	KindClass      Kind = "class"
	KindStruct     Kind = "struct"
	KindInterface  Kind = "interface"
	KindTrait      Kind = "trait"
	KindComponent  Kind = "component"
	KindComposable Kind = "composable"
	KindType       Kind = "type"
	KindEnum       Kind = "enum"
	KindConstant   Kind = "constant"
	KindModule     Kind = "module"
	KindRoute      Kind = "route"
)

// ID is the four-tuple stable primary key of the graph: project, path,
// kind, name. For methods, name is "Owner.method". Serialized form is
// "project:path:kind:name".
type ID struct {
	Project string
	Path    string
	Kind    Kind
	Name    string
}

// New builds an ID from its components.
func New(project, path string, kind Kind, name string) ID {
	return ID{Project: project, Path: path, Kind: kind, Name: name}
}

// String returns the canonical "project:path:kind:name" serialization.
func (id ID) String() string {
	return id.Project + ":" + id.Path + ":" + string(id.Kind) + ":" + id.Name
}

// Parse decodes a serialized SymbolID. Relies on the file walker never
// emitting a ':' in a relative path, so splitting on the first three
// colons cleanly separates project, path, kind, and name.
func Parse(s string) (ID, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 4 {
		return ID{}, fmt.Errorf("symbol: malformed id %q", s)
	}
	return ID{Project: parts[0], Path: parts[1], Kind: Kind(parts[2]), Name: parts[3]}, nil
}

// MethodName builds the "Owner.method" name used for method symbols.
func MethodName(owner, method string) string {
	return owner + "." + method
}

// IsZero reports whether id is the zero value (no symbol referenced).
func (id ID) IsZero() bool {
	return id == ID{}
}
