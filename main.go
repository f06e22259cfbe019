package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/kdlhtml/cli"
	"github.com/ardnew/kdlhtml/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error("render failed", slog.Any("error", err))
		os.Exit(1)
	}
}
