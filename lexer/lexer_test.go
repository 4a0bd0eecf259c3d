package lexer_test

import (
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/wes-sleeman/mithril/internal/testdata"
	"github.com/wes-sleeman/mithril/lexer"
)

// TestGolden dumps the full candidate stream for every *.src fixture under
// ../testdata against a golden file named after it in lexer/testdata/.
func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := testdata.FindSourceFiles("../testdata")
	if err != nil {
		t.Fatalf("failed to find test files: %v", err)
	}

	for _, testfile := range testfiles {
		testfile := testfile
		name := strings.TrimSuffix(filepathBase(testfile), testdata.SourceExt)
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			source, err := os.ReadFile(testfile)
			if err != nil {
				t.Fatalf("failed to read %s: %v", testfile, err)
			}

			stream, err := lexer.Lex(string(source))
			if err != nil {
				t.Fatalf("%s returned error: %v", testfile, err)
			}

			var b strings.Builder
			for _, pos := range stream.Offsets() {
				for _, tok := range stream.At(pos) {
					b.WriteString(tok.String())
					b.WriteString("\n")
				}
			}

			g := goldie.New(t)
			g.Assert(t, name, []byte(b.String()))
		})
	}
}

func filepathBase(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return p
	}

	return p[i+1:]
}

func TestAmbiguity(t *testing.T) {
	t.Parallel()

	stream, err := lexer.Lex("let")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokens := stream.At(0)
	if len(tokens) != 2 {
		t.Fatalf("expected 2 candidates for %q, got %d: %v", "let", len(tokens), tokens)
	}
}

func TestLiteralSuppressesIdentifier(t *testing.T) {
	t.Parallel()

	stream, err := lexer.Lex("5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tok := range stream.At(0) {
		if tok.Kind.String() == "Identifier" {
			t.Fatalf("Identifier candidate should have been removed, got %v", stream.At(0))
		}
	}
}

func TestIncreasingOffsets(t *testing.T) {
	t.Parallel()

	stream, err := lexer.Lex("let x = 5 ;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	offsets := stream.Offsets()
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			t.Fatalf("offsets not strictly increasing: %v", offsets)
		}
	}

	for _, pos := range offsets {
		for _, tok := range stream.At(pos) {
			if tok.Extents.Start != pos {
				t.Errorf("token %v stored at %d but Extents.Start=%d", tok, pos, tok.Extents.Start)
			}
			if tok.Extents.End <= pos {
				t.Errorf("token %v has non-positive-width extent at %d", tok, pos)
			}
		}
	}
}
