package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dukerupert/shoplist/internal/cli"
	"github.com/dukerupert/shoplist/internal/config"
	"github.com/dukerupert/shoplist/internal/logging"
)

func main() {
	shop := flag.String("shop", "", "shop to use instead of the current one")
	envFile := flag.String("env", ".env", "dotenv file to load")
	flag.Parse()

	code := run(*envFile, *shop, flag.Args())
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

func run(envFile, shop string, args []string) int {
	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return cli.ExitError
	}

	// The full-screen list owns the terminal, so it logs to a file.
	logger := logging.Setup(cfg.LogLevel, os.Stderr)
	if len(args) == 0 || args[0] == "open" {
		fileLogger, f, err := logging.SetupFile(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return cli.ExitError
		}
		defer f.Close()
		logger = fileLogger
	}

	r := &cli.Runner{
		Config: cfg,
		Shop:   shop,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Logger: logger,
	}
	return r.Run(args)
}
