// Command frontc drives the lex/parse/lower pipeline from the command line:
// an interactive prompt when no input files are named, or a batch run over
// one or more source files otherwise.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"

	"github.com/wes-sleeman/mithril/ast"
	"github.com/wes-sleeman/mithril/driver"
)

func main() {
	const inputUsage = "input file path"

	var inputPath string
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")
	flag.Parse()

	paths := flag.Args()
	if inputPath != "" {
		paths = append([]string{inputPath}, paths...)
	}

	if len(paths) == 0 {
		if err := RunPrompt(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := RunFiles(paths); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var history = filepath.Join(xdg.DataHome, "mithril", ".mithril_history")

// RunPrompt reads one definition (or expression statement) at a time from
// an interactive liner prompt, printing the lowered form of whatever each
// line produces.
func RunPrompt() error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	pipeline := driver.NewPipeline()
	for {
		input, err := line.Prompt("> ")
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		defs, err := pipeline.RunSource(input)
		for _, def := range defs {
			fmt.Println(ast.String(def))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

// RunFiles reads every named path, runs the pipeline over all of them, and
// prints the lowered form of every resulting definition in input order.
func RunFiles(paths []string) error {
	files := make([]driver.File, len(paths))
	for i, path := range paths {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		files[i] = driver.File{Path: path, Source: string(bytes)}
	}

	defs, err := driver.NewPipeline().RunFiles(files)
	if err != nil {
		return err
	}

	for _, def := range defs {
		fmt.Println(ast.String(def))
	}
	return nil
}
