package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/spf13/cobra"

	"github.com/fluxofest/live-chat/internal/app"
	"github.com/fluxofest/live-chat/internal/kafka"
	"github.com/fluxofest/live-chat/internal/server"
	"github.com/fluxofest/live-chat/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:           "live-chat",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			server.StartServer,
			usecase.StartEngineLoop,
			kafka.StartConsumeMessages,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
