// Command emberc compiles ember source to LLVM IR text.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/emberlang/ember/internal/codegen"
	"github.com/emberlang/ember/internal/lexer"
	"github.com/emberlang/ember/internal/parser"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	outputFile := flag.String("o", "", "Output file (default: stdout; only valid with a single input)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "emberc - an ember to LLVM IR compiler\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.ember> [more inputs...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("emberc version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if len(args) == 1 {
		if err := compileFile(args[0], *outputFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *outputFile != "" {
		fmt.Fprintln(os.Stderr, "-o cannot be used with more than one input; each input is compiled to its own .ll file alongside it")
		os.Exit(1)
	}
	os.Exit(compileAll(args))
}

// compileAll compiles every input file through a bounded pool of worker
// goroutines — a CLI convenience, not a compiler-core concern, since each
// call to compileFile builds its own *codegen.Generator/*ir.Module and
// shares no state with any other file. Workers are capped at
// runtime.NumCPU() and at the number of files, whichever is smaller, so a
// two-file invocation never spins up an idle pool.
func compileAll(inputFiles []string) int {
	workers := runtime.NumCPU()
	if workers > len(inputFiles) {
		workers = len(inputFiles)
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	exitCode := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				out := strings.TrimSuffix(file, filepath.Ext(file)) + ".ll"
				if err := compileFile(file, out); err != nil {
					mu.Lock()
					fmt.Fprintln(os.Stderr, err)
					exitCode = 1
					mu.Unlock()
				}
			}
		}()
	}

	for _, f := range inputFiles {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	return exitCode
}

// compileFile lexes, parses and lowers one input file, writing the
// resulting IR text to outputFile, or to stdout when outputFile is empty.
func compileFile(inputFile, outputFile string) error {
	src, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("%s: error reading file: %w", inputFile, err)
	}

	l := lexer.New(string(src))
	program, err := parser.ParseProgram(l)
	if err != nil {
		return fmt.Errorf("%s: parse error: %w", inputFile, err)
	}

	module, err := codegen.Generate(program)
	if err != nil {
		return fmt.Errorf("%s: codegen error: %w", inputFile, err)
	}

	output := module.String()

	if outputFile == "" {
		fmt.Print(output)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
		return fmt.Errorf("%s: error writing file: %w", inputFile, err)
	}
	return nil
}
