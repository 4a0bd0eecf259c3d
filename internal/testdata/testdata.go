// Package testdata provides the YAML-driven table-test fixtures and the
// golden-file source discovery shared by the lexer, parser, and lower test
// suites.
package testdata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is one row of a testcase.yaml table: a labelled source snippet with
// one expected rendering per pipeline stage ("lexer", "parser", "lower").
type Case struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

// ReadCases parses a testcase.yaml document and drops disabled rows.
func ReadCases(raw []byte) []Case {
	var cases []Case
	if err := yaml.Unmarshal(raw, &cases); err != nil {
		panic(err)
	}

	i := 0
	for _, c := range cases {
		if c.Enable {
			cases[i] = c
			i++
		}
	}

	return cases[:i]
}

// SourceExt is the file extension used by the golden-file corpus under
// testdata/.
const SourceExt = ".src"

// FindSourceFiles returns every *.src file under dir, sorted for
// deterministic test iteration order.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}
