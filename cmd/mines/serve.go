package main

import (
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-core/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over HTTP and websockets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"server.addr": "addr",
		})
		if err != nil {
			return err
		}

		a, err := app.New(log, cfg)
		if err != nil {
			return err
		}

		err = a.Run(cmd.Context())
		log.Info("exit reason: ", cmd.Context().Err())
		return err
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
}
