package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/flytohub/flyto-indexer/internal/hashutil"
	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/parser"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

var scriptBlockRe = regexp.MustCompile(`(?s)<script(?:\s+setup)?(?:\s+lang=["'](\w+)["'])?[^>]*>(.*?)</script>`)

var (
	definePropsRe    = regexp.MustCompile(`defineProps(?:<[^>]*>)?\s*\(`)
	defineEmitsRe    = regexp.MustCompile(`defineEmits(?:<[^>]*>)?\s*\(`)
	composableCallRe = regexp.MustCompile(`\buse[A-Z]\w*\s*\(`)
)

// extractVue slices the <script> block out of a single-file component and
// re-dispatches it to TypeScript (or JavaScript, when the lang attribute
// contains "js"; a block with no lang attribute goes to TypeScript) for
// symbol extraction, then adds one component
// symbol for the file itself and references edges for defineProps,
// defineEmits, and composable calls — constructs with no equivalent in a
// plain .ts file.
func extractVue(ctx context.Context, project, relPath string, content []byte) Result {
	m := scriptBlockRe.FindSubmatchIndex(content)
	contentHash := hashutil.Hash(content)

	componentName := componentNameFromPath(relPath)
	componentID := symbol.New(project, relPath, symbol.KindComponent, componentName)

	if m == nil {
		return Result{
			File: symbol.FileRecord{
				Path: relPath, Project: project, Language: string(lang.Vue),
				ContentHash: contentHash, Symbols: []symbol.ID{componentID},
			},
			Symbols: []symbol.Record{{ID: componentID, Kind: symbol.KindComponent, Exports: true, BodyHash: contentHash}},
		}
	}

	scriptLang := lang.TypeScript
	if m[2] >= 0 && strings.Contains(strings.ToLower(string(content[m[2]:m[3]])), "js") {
		scriptLang = lang.JavaScript
	}
	script := content[m[4]:m[5]]
	scriptStartLine := strings.Count(string(content[:m[4]]), "\n")

	spec := lang.ForLanguage(scriptLang)
	tree, err := parser.Parse(ctx, scriptLang, script)
	var inner Result
	if err == nil {
		defer tree.Close()
		inner = fromTree(project, relPath, scriptLang, spec, script, tree.RootNode())
		offsetRecords(inner.Symbols, scriptStartLine)
	}

	refsOut := composableRefs(string(script))

	componentRecord := symbol.Record{
		ID:       componentID,
		Kind:     symbol.KindComponent,
		Exports:  true,
		RefsOut:  refsOut,
		BodyHash: contentHash,
		Span:     symbol.Span{StartLine: 1, EndLine: strings.Count(string(content), "\n") + 1},
	}

	ids := append([]symbol.ID{componentID}, inner.File.Symbols...)
	file := symbol.FileRecord{
		Path:          relPath,
		Project:       project,
		Language:      string(lang.Vue),
		ContentHash:   contentHash,
		Symbols:       ids,
		Imports:       inner.File.Imports,
		DefinedRoutes: inner.File.DefinedRoutes,
		OutboundCalls: inner.File.OutboundCalls,
	}
	symbols := append([]symbol.Record{componentRecord}, inner.Symbols...)
	return Result{File: file, Symbols: symbols}
}

func offsetRecords(records []symbol.Record, lineOffset int) {
	for i := range records {
		records[i].Span.StartLine += lineOffset
		records[i].Span.EndLine += lineOffset
	}
}

func composableRefs(script string) []symbol.Ref {
	var refs []symbol.Ref
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			refs = append(refs, symbol.Ref{Name: name, Kind: symbol.RefReference})
		}
	}
	if definePropsRe.MatchString(script) {
		add("defineProps")
	}
	if defineEmitsRe.MatchString(script) {
		add("defineEmits")
	}
	for _, m := range composableCallRe.FindAllString(script, -1) {
		add(strings.TrimSuffix(m, "("))
	}
	return refs
}

func componentNameFromPath(relPath string) string {
	base := relPath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".vue")
}
