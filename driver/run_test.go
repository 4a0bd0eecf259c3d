package driver_test

import (
	"strings"
	"testing"

	"github.com/wes-sleeman/mithril/ast"
	"github.com/wes-sleeman/mithril/driver"
)

func TestRunSourceSingleDefinition(t *testing.T) {
	t.Parallel()

	defs, err := driver.NewPipeline().RunSource("let x = 5;")
	if err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}

	want := "(ValueDefinition private (InferredType) (PatternId x _) 5)"
	if got := ast.String(defs[0]); got != want {
		t.Errorf("ast.String() = %s, want %s", got, want)
	}
}

func TestRunSourceEmptyFile(t *testing.T) {
	t.Parallel()

	defs, err := driver.NewPipeline().RunSource("")
	if err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	if len(defs) != 0 {
		t.Errorf("got %d definitions, want 0", len(defs))
	}
}

func TestRunSourceSurfacesMalformedEscapeAsWarning(t *testing.T) {
	t.Parallel()

	defs, err := driver.NewPipeline().RunSource(`let x = "\q";`)
	if err == nil {
		t.Fatal("RunSource returned nil error for a malformed escape sequence")
	}
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1 despite the non-fatal lex diagnostic", len(defs))
	}
}

func TestRunSourceParseError(t *testing.T) {
	t.Parallel()

	if _, err := driver.NewPipeline().RunSource("let x = ;"); err == nil {
		t.Fatal("RunSource returned nil error for a missing right-hand side")
	} else if !strings.Contains(err.Error(), "parse:") {
		t.Errorf("error = %v, want it wrapped with \"parse:\"", err)
	}
}

func TestRunFilesConcatenatesInInputOrder(t *testing.T) {
	t.Parallel()

	files := []driver.File{
		{Path: "a.mith", Source: "let a = 1;"},
		{Path: "b.mith", Source: "let b = 2;"},
		{Path: "c.mith", Source: "let c = 3;"},
	}

	defs, err := driver.NewPipeline().RunFiles(files)
	if err != nil {
		t.Fatalf("RunFiles returned error: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("got %d definitions, want 3", len(defs))
	}

	want := []string{
		"(ValueDefinition private (InferredType) (PatternId a _) 1)",
		"(ValueDefinition private (InferredType) (PatternId b _) 2)",
		"(ValueDefinition private (InferredType) (PatternId c _) 3)",
	}
	for i, w := range want {
		if got := ast.String(defs[i]); got != w {
			t.Errorf("defs[%d] = %s, want %s", i, got, w)
		}
	}
}

func TestRunFilesReportsFirstErrorByInputOrder(t *testing.T) {
	t.Parallel()

	files := []driver.File{
		{Path: "ok.mith", Source: "let a = 1;"},
		{Path: "bad.mith", Source: "let x = ;"},
	}

	_, err := driver.NewPipeline().RunFiles(files)
	if err == nil {
		t.Fatal("RunFiles returned nil error, want the second file's error")
	}
	if !strings.Contains(err.Error(), "bad.mith") {
		t.Errorf("error = %v, want it to name bad.mith", err)
	}
}

func TestRunFilesEmpty(t *testing.T) {
	t.Parallel()

	defs, err := driver.NewPipeline().RunFiles(nil)
	if err != nil {
		t.Fatalf("RunFiles returned error: %v", err)
	}
	if len(defs) != 0 {
		t.Errorf("got %d definitions, want 0", len(defs))
	}
}
