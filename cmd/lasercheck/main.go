package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"laserpuzzle/internal/check"
	"laserpuzzle/internal/logging"

	"go.uber.org/zap"
)

func main() {
	level := flag.String("log-level", "warn", "log level")
	jobs := flag.Int("j", 0, "scenes checked at once; 0 means GOMAXPROCS")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scene...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	l, err := logging.New(*level, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "lasercheck: %v\n", err)
		os.Exit(2)
	}
	defer logging.Replace(l)()
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, err := check.Run(ctx, flag.Args(), *jobs)
	if err != nil {
		l.Error("check interrupted", zap.Error(err))
		os.Exit(1)
	}
	for _, r := range reports {
		if err := r.Write(os.Stdout); err != nil {
			l.Error("write report", zap.Error(err))
		}
	}
	if check.Failed(reports) {
		os.Exit(1)
	}
}
