package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/sealvault/sealvault-core/internal/buildinfo"
	"github.com/sealvault/sealvault-core/internal/cli"
	"github.com/sealvault/sealvault-core/internal/config"
	"github.com/sealvault/sealvault-core/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx, flagless(os.Args[1:])); err != nil {
		log.Fatalf("%v", err)
	}
}

// flagless drops "-flag value" and "-flag=value" pairs, leaving only the
// positional command words. The config packages parse the flags themselves.
func flagless(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") &&
				i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
