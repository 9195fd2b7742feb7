package symbol

// Span is a (start_line, end_line) range within a file, 1-indexed.
type Span struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// RefKind tags why a refs_out name was recorded, so the graph builder can
// pick the matching edge kind instead of assuming every reference is a
// call. The zero value means "ordinary identifier/call sweep" and resolves
// to calls, unless the resolver itself matched it through an import alias.
type RefKind string

const (
	RefCall      RefKind = ""
	RefExtends   RefKind = "extends"
	RefReference RefKind = "references"
)

// Ref is one outgoing textual reference a symbol's body emits, tagged with
// where it came from.
type Ref struct {
	Name string  `json:"name"`
	Kind RefKind `json:"kind,omitempty"`
}

// Record is the uniform output of every language parser: one entry per
// definable symbol.
type Record struct {
	ID         ID       `json:"id"`
	Kind       Kind     `json:"kind"`
	Span       Span     `json:"span"`
	Signature  string   `json:"signature"`
	Doc        string   `json:"doc,omitempty"`
	Decorators []string `json:"decorators,omitempty"`
	Exports    bool     `json:"exports"`
	RefsOut    []Ref    `json:"refs_out,omitempty"`
	BodyHash   uint64   `json:"body_hash"`
}

// Import is one import/use declaration: the module string as written, and
// an optional local alias.
type Import struct {
	Module string `json:"module"`
	Alias  string `json:"alias,omitempty"`
}

// Framework identifies the web framework a RouteDecl was extracted from.
type Framework string

const (
	FrameworkFastAPI   Framework = "fastapi"
	FrameworkFlask     Framework = "flask"
	FrameworkStarlette Framework = "starlette"
	FrameworkExpress   Framework = "express"
	FrameworkOther     Framework = "other"
)

// RouteDecl is a server-side HTTP route declaration.
type RouteDecl struct {
	Method        string    `json:"method"`
	PathPattern   string    `json:"path_pattern"`
	HandlerSymbol ID        `json:"handler_symbol_id"`
	Framework     Framework `json:"framework"`
}

// CallSite is a client-side HTTP call extracted from fetch/axios/$http/etc.
type CallSite struct {
	Method           string `json:"method"`
	URLLiteral       string `json:"url_literal"`
	File             string `json:"file"`
	Line             int    `json:"line"`
	ContainingSymbol ID     `json:"containing_symbol"`
}

// ParseStatus flags degraded-but-total parse outcomes for a file.
type ParseStatus string

const (
	ParseOK    ParseStatus = ""
	ParseError ParseStatus = "parse_error"
)

// FileRecord is the per-file output of discovery + parsing.
type FileRecord struct {
	Path          string      `json:"path"`
	Project       string      `json:"project"`
	Language      string      `json:"language"`
	ContentHash   uint64      `json:"content_hash"`
	Symbols       []ID        `json:"symbols"`
	Imports       []Import    `json:"imports"`
	DefinedRoutes []RouteDecl `json:"defined_routes"`
	OutboundCalls []CallSite  `json:"outbound_calls"`
	Status        ParseStatus `json:"status,omitempty"`
}

// Confidence is the tier attached to every graph edge.
type Confidence string

const (
	ConfidenceExact     Confidence = "exact"
	ConfidenceLikely    Confidence = "likely"
	ConfidenceHeuristic Confidence = "heuristic"
)

// EdgeKind enumerates the edge relationships the graph builder produces.
type EdgeKind string

const (
	EdgeCalls      EdgeKind = "calls"
	EdgeImports    EdgeKind = "imports"
	EdgeExtends    EdgeKind = "extends"
	EdgeReferences EdgeKind = "references"
	EdgeRoutesTo   EdgeKind = "routes_to"
)

// Edge is a directed, confidence-tagged relationship between two symbols.
type Edge struct {
	From       ID         `json:"from"`
	To         ID         `json:"to"`
	Kind       EdgeKind   `json:"kind"`
	Confidence Confidence `json:"confidence"`
}

// Project describes one indexed root.
type Project struct {
	Name           string         `json:"name"`
	RootPath       string         `json:"root_path"`
	LanguageHints  []string       `json:"language_hints,omitempty"`
	LanguageCounts map[string]int `json:"language_counts,omitempty"`
}

// ParsedFile groups one file's record with the symbols extracted from it.
// The scan pipeline does not use it: its workers hand extract.Result to
// the reducer.
type ParsedFile struct {
	File    FileRecord
	Symbols []Record
}
