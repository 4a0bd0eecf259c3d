package driver

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/wes-sleeman/mithril/ast"
	"github.com/wes-sleeman/mithril/cst"
	"github.com/wes-sleeman/mithril/lexer"
	"github.com/wes-sleeman/mithril/lower"
	"github.com/wes-sleeman/mithril/parser"
)

// Pipeline runs the Lex -> Parse -> Lower stages over one or more files. It
// holds no state of its own; a caller may share one Pipeline across
// goroutines or construct a fresh one per call interchangeably.
type Pipeline struct{}

// NewPipeline returns a ready-to-use Pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// RunSource lexes, parses, and lowers a single file's source text, returning
// its definitions in source order. The lexer never fails outright; a
// non-nil error from it carries only non-fatal diagnostics (malformed
// escape sequences) and does not by itself stop parsing. If parsing or
// lowering then fails fatally, any pending lex diagnostics are folded into
// the returned error so the caller sees the full picture in one place.
func (p *Pipeline) RunSource(source string) ([]ast.Definition, error) {
	stream, lexWarn := lexer.Lex(source)

	tree, err := parser.Parse(stream, source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", errors.Join(err, lexWarn))
	}

	defs, err := lower.Lower([]*cst.Branch{tree})
	if err != nil {
		return nil, fmt.Errorf("lower: %w", errors.Join(err, lexWarn))
	}

	return defs, lexWarn
}

// File pairs a file's path with its already-read contents, the unit of work
// RunFiles fans out over.
type File struct {
	Path   string
	Source string
}

// RunFiles runs the pipeline over each file independently: per §5's
// concurrency model, files are lexed, parsed, and lowered with no
// cross-file dependency, so this fans one goroutine out per file, bounded
// by GOMAXPROCS. Successful results are concatenated in input order for a
// deterministic result even though the lowerer's own aggregation is
// order-independent; the first error by input order, if any, is returned
// instead and no partial results are handed back.
func (p *Pipeline) RunFiles(files []File) ([]ast.Definition, error) {
	results := make([][]ast.Definition, len(files))
	errs := make([]error, len(files))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, f File) {
			defer wg.Done()
			defer func() { <-sem }()

			defs, err := p.RunSource(f.Source)
			if defs == nil && err != nil {
				errs[i] = fmt.Errorf("%s: %w", f.Path, err)
				return
			}
			results[i] = defs
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var all []ast.Definition
	for _, defs := range results {
		all = append(all, defs...)
	}
	return all, nil
}
