package main

// implements the schemer command: run a file, evaluate an expression
// or start a repl.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"schemer/config"
	"schemer/eval"
	"schemer/lexer"
	"schemer/parser"
)

var VERSION string
var LOGO = `
           |
  ( ( ) )  | schemer
  ( ' ( )  | version: $VERSION
           |
`

func sliceVersion(v string) string {
	m := 10
	if len(v) < 10 {
		m = len(v)
	}
	return v[0:m]
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("schemer: ")

	configPath := flag.String("config", "", "read settings from this YAML file")
	expr := flag.String("e", "", "evaluate this expression and print the result")
	verbose := flag.Bool("v", false, "trace imports")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: schemer [-config file] [-e expr] [-v] [file.scm]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *verbose {
		cfg.Verbose = true
	}

	opts := []eval.Option{
		eval.WithImportRoot(cfg.ImportRoot),
		eval.WithMaxDepth(cfg.MaxDepth),
	}
	if cfg.Verbose {
		opts = append(opts, eval.WithLogger(log.New(os.Stderr, "schemer: ", 0)))
	}

	switch {
	case *expr != "":
		os.Exit(run("<expr>", *expr, opts))
	case flag.NArg() > 0:
		filename := flag.Arg(0)
		source, err := os.ReadFile(filename)
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(run(filename, string(source), opts))
	default:
		if err := repl(cfg, opts); err != nil {
			log.Fatal(err)
		}
	}
}

func run(filename, source string, opts []eval.Option) int {
	ctx := eval.NewContext(opts...)
	rv, err := ctx.Run(filename, source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(rv)
	return 0
}

func repl(cfg *config.Config, opts []eval.Option) error {
	ic := eval.NewInteractiveContext(opts...)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    &completer{ic},
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println(strings.Replace(LOGO, "$VERSION", sliceVersion(VERSION), 1))
	var pending []string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			pending = nil
			rl.SetPrompt(cfg.Prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		pending = append(pending, line)
		input := strings.Join(pending, "\n")
		rv, err := ic.Run(input)
		if incomplete(err) {
			rl.SetPrompt(strings.Repeat(" ", len(cfg.Prompt)))
			continue
		}
		pending = nil
		rl.SetPrompt(cfg.Prompt)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if rv != "" {
			fmt.Println(rv)
		}
	}
}

// incomplete reports whether err only says that the input stopped
// inside an open form, in which case the repl keeps reading.
func incomplete(err error) bool {
	var perr *parser.Error
	return errors.As(err, &perr) && perr.Token.Type == lexer.EOF
}

// completer completes global names at the cursor.
type completer struct {
	ic *eval.InteractiveContext
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !strings.ContainsRune(" \t()'", line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	if word == "" {
		return nil, 0
	}
	var candidates [][]rune
	for _, name := range c.ic.Names(word) {
		candidates = append(candidates, []rune(name[len(word):]))
	}
	return candidates, len([]rune(word))
}
