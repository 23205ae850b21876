package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kestrel7/stockpile/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env in the working directory, same variables the config
	// layer reads (STOCKPILE_API_URL, STOCKPILE_THEME, STOCKPILE_DEBUG).
	_ = godotenv.Load()

	configPath := flag.String("config", "", "override config file path (optional)")
	apiBase := flag.String("api", "", "override the catalog API base URL (optional)")
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		APIBase:    *apiBase,
	}

	var err error
	switch flag.Arg(0) {
	case "":
		err = app.Run(ctx, opts)
	case "export":
		err = app.RunExport(ctx, opts, flag.Arg(1))
	case "import":
		if flag.Arg(1) == "" {
			fmt.Fprintln(os.Stderr, "stockpile: import needs a spreadsheet path")
			return 2
		}
		err = app.RunImport(ctx, opts, flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "stockpile: unknown command %q\n", flag.Arg(0))
		usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "stockpile: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: stockpile [flags] [command]

Commands:
  (none)            start the TUI
  export [file]     write the catalog to a spreadsheet
  import <file>     create a product per spreadsheet row

Flags:
`)
	flag.PrintDefaults()
}
