package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/spf13/cobra"

	"github.com/wanderhub/marketplace-chat/internal/app"
	"github.com/wanderhub/marketplace-chat/internal/server"
)

var rootCmd = &cobra.Command{
	Use:           "marketplace-chat",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(
			server.StartServer,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
