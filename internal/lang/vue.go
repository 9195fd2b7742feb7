package lang

// Vue single-file components have no dedicated tree-sitter grammar in this
// registry. The extractor slices out the <script> (or <script setup>) block
// with a regex and re-dispatches its contents to the TypeScript or
// JavaScript spec depending on the block's lang attribute, so the node
// kinds registered here are TypeScript's — they're consulted only when a
// caller asks ForLanguage(Vue) for the fallback symbol/class/call kinds
// shared with its script block.
func init() {
	Register(&LanguageSpec{
		Language:       Vue,
		FileExtensions: []string{".vue"},
		FunctionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
			"function_signature",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"class",
			"interface_declaration",
			"type_alias_declaration",
		},
		ModuleNodeTypes:    []string{"program"},
		CallNodeTypes:      []string{"call_expression"},
		ImportNodeTypes:    []string{"import_statement", "lexical_declaration", "export_statement"},
		ImportFromTypes:    []string{"import_statement", "lexical_declaration", "export_statement"},
		DecoratorNodeTypes: []string{"decorator"},
		UsesTreeSitter:     false,
	})
}
