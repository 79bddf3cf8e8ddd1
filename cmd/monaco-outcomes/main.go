// Command monaco-outcomes manages the outcome accounts of Monaco Protocol
// markets: address derivation, initialisation, listing and price ladders.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/krazyTry/monaco-go/config"
	"github.com/krazyTry/monaco-go/logger"

	"github.com/sirupsen/logrus"
)

const usage = `usage: monaco-outcomes [-config file] <command> [args]

commands:
  pda <market> <index>               derive the outcome account at index
  next <market>                      derive the next free outcome account
  init <market> <title> [title...]   initialise one outcome per title
  list <market>                      list the outcomes of a market
  prices <market> <index> <price>... add prices to an outcome's ladder
`

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
		Console:    os.Stderr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logrus.NewEntry(log), flag.Args(), os.Stdout); err != nil {
		log.WithError(err).Error("command failed")
		stop()
		logger.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Entry, args []string, out io.Writer) error {
	cmd, args := args[0], args[1:]
	log = log.WithField("command", cmd)

	switch cmd {
	case "pda":
		return runPda(cfg, args, out)
	case "next", "list":
		client, closeFn, err := newClient(ctx, cfg, log, false)
		if err != nil {
			return err
		}
		defer closeFn()
		if cmd == "next" {
			return runNext(ctx, client, args, out)
		}
		return runList(ctx, client, args, out)
	case "init", "prices":
		client, closeFn, err := newClient(ctx, cfg, log, true)
		if err != nil {
			return err
		}
		defer closeFn()
		if cmd == "init" {
			return runInit(ctx, client, args, out)
		}
		return runPrices(ctx, client, args, out)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

