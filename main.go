package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dpshade/prompt-vault/internal/cli"
	"github.com/dpshade/prompt-vault/internal/config"
)

var version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "print version information")
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("prompt-vault %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	app, err := cli.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.ExecuteCommand(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
