package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"vela/internal/config"
	"vela/internal/logger"
	"vela/internal/runner"
	"vela/pkg/color"
)

type stringList []string

func (s *stringList) String() string {
	return fmt.Sprint(*s)
}

func (s *stringList) Set(dir string) error {
	*s = append(*s, dir)
	return nil
}

// Main entry point for the VeLa interpreter.
func main() {
	r := runner.Runner{}

	var (
		help       bool
		verbose    bool
		noColor    bool
		configFile string
		sourceDirs stringList
	)

	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&noColor, "n", false, "No color")
	flag.StringVar(&configFile, "c", config.DefaultPath(), "Config file")
	flag.StringVar(&r.Expression, "e", "", "Evaluate an expression and print its value")
	flag.BoolVar(&r.Interactive, "i", false, "Start an interactive session")
	flag.Var(&sourceDirs, "s", "Directory of VeLa code to load first (repeatable)")
	flag.StringVar(&r.Filter, "f", "", "Filter records with a boolean expression")
	flag.StringVar(&r.DataFile, "d", "", "YAML records file for -f")

	flag.Parse()
	args := flag.Args()

	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Init(verbose, noColor)
		log.Fatal("Cannot load configuration", "error", err)
	}
	cfg.Verbose = cfg.Verbose || verbose
	cfg.NoColor = cfg.NoColor || noColor
	cfg.SourceDirs = append(cfg.SourceDirs, sourceDirs...)

	logger.Init(cfg.Verbose, cfg.NoColor)
	if help {
		fmt.Printf("Usage: %s [options] [file]\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if cfg.NoColor {
		color.EnableColor(false)
	}

	if len(args) > 0 {
		r.SourceFile = args[0]
	}
	r.Config = cfg

	if err := r.Run(); err != nil {
		log.Fatal("VeLa failed", "error", err, "help", fmt.Sprintf("%s -h", os.Args[0]))
	}
}
