package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "campusbot",
	Short: "CampusBot — campus question answering service",
	Long:  `CampusBot answers campus learning questions over HTTP and recommends related articles from the campus knowledge base.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
