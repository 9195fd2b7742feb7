// Package lang is the tagged-variant registry of supported source
// languages: one LanguageSpec per language, keyed by file extension, so the
// rest of the indexer dispatches on data instead of growing a subclass
// hierarchy per language.
package lang

// Language identifies one of the source languages the extractor supports.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Vue        Language = "vue"
	Go         Language = "go"
	Rust       Language = "rust"
	Java       Language = "java"
	CPP        Language = "cpp"
	CSharp     Language = "c-sharp"
	PHP        Language = "php"
	Lua        Language = "lua"
	Scala      Language = "scala"
	Kotlin     Language = "kotlin"
)

// AllLanguages returns every language with a registered spec, in the fixed
// order they're declared above (stable for any caller that iterates it).
func AllLanguages() []Language {
	return []Language{
		Python, JavaScript, TypeScript, TSX, Vue,
		Go, Rust, Java, CPP, CSharp, PHP, Lua, Scala, Kotlin,
	}
}

// LanguageSpec names the tree-sitter node kinds the extractor looks for in
// one language's grammar. Node-kind names come directly from each grammar's
// own node-types.json; they are not an abstraction the indexer invents.
type LanguageSpec struct {
	Language Language

	FileExtensions []string

	FunctionNodeTypes  []string // top-level and nested function/closure forms
	ClassNodeTypes     []string // class/struct/interface/trait/enum forms
	FieldNodeTypes     []string // struct/class field declarations
	ModuleNodeTypes    []string // the grammar's root/compilation-unit node
	CallNodeTypes      []string // call-expression forms (for refs_out and call sites)
	ImportNodeTypes    []string // import/use declaration forms
	ImportFromTypes    []string // "from X import Y" style forms (subset of above)
	DecoratorNodeTypes []string // decorator/annotation forms, ordered as written

	PackageIndicators []string // filenames that mark a package root (informational)

	// UsesTreeSitter is informational only: the extractor never reads it,
	// and no registered spec sets it, so it is false for every language,
	// tree-sitter-backed ones included. Vue's spec sets it false explicitly;
	// its <script> block is re-dispatched to TypeScript/JavaScript rather
	// than parsed by a grammar of its own.
	UsesTreeSitter bool
}

// registry maps file extensions (including the leading dot) to specs.
var registry = map[string]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry, indexed by every
// extension it claims.
func Register(spec *LanguageSpec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the LanguageSpec registered for a file extension
// (e.g. ".go"), or nil if none is registered.
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a Language, or nil.
func ForLanguage(l Language) *LanguageSpec {
	for _, spec := range registry {
		if spec.Language == l {
			return spec
		}
	}
	return nil
}

// ForExtensionLanguage returns the Language registered for a file
// extension, and whether one was found.
func ForExtensionLanguage(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
