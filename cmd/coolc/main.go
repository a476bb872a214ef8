// Command coolc is coolc's command-line entry point: `coolc build file...`
// runs the four analysis passes over one or more .cl source files and
// prints any diagnostic found, `coolc repl` opens an interactive
// read-eval-print loop for single expressions (parse+analyze only — coolc
// has no evaluator, so the REPL reports types, not values).
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	buildCmd := flag.NewFlagSet("build", flag.ExitOnError)
	replCmd := flag.NewFlagSet("repl", flag.ExitOnError)
	printCmd := flag.NewFlagSet("print", flag.ExitOnError)
	printComputed := printCmd.Bool("computed", false, "annotate every expression with its resolved type")

	if len(os.Args) < 2 {
		fmt.Println("expected 'build', 'print', or 'repl' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		if err := buildCmd.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		ok := build(os.Stdout, os.Stderr, buildCmd.Args())
		if !ok {
			os.Exit(1)
		}
	case "print":
		if err := printCmd.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		ok := printAST(os.Stdout, os.Stderr, printCmd.Args(), *printComputed)
		if !ok {
			os.Exit(1)
		}
	case "repl":
		if err := replCmd.Parse(os.Args[2:]); err != nil {
			os.Exit(1)
		}
		runRepl(os.Stdin, os.Stdout)
	default:
		fmt.Println("expected 'build', 'print', or 'repl' subcommand")
		os.Exit(1)
	}
}
