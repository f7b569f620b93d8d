package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/transport/terminal"
)

func newPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in this terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := initConfig(*configPath)

			// logs go to stderr so they never mix with the board
			logger := initLogger(conf, os.Stderr)

			return terminal.New(logger, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}
