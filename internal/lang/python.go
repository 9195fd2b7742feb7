package lang

// Python grammar node kinds. Decorated route handlers (FastAPI/Flask/
// Starlette) are recognized from the decorator list produced by
// DecoratorNodeTypes, not a dedicated node kind — the grammar attaches
// decorators as siblings of the function_definition they apply to.
func init() {
	Register(&LanguageSpec{
		Language:           Python,
		FileExtensions:     []string{".py"},
		FunctionNodeTypes:  []string{"function_definition"},
		ClassNodeTypes:     []string{"class_definition"},
		ModuleNodeTypes:    []string{"module"},
		CallNodeTypes:      []string{"call"},
		ImportNodeTypes:    []string{"import_statement"},
		ImportFromTypes:    []string{"import_from_statement"},
		DecoratorNodeTypes: []string{"decorator"},
		PackageIndicators:  []string{"__init__.py"},
	})
}
