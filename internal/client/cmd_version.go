package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const versionProbeTimeout = 3 * time.Second

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprint(w, a.buildInfo)

			serverAdapter, err := a.newAdapter()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), versionProbeTimeout)
			defer cancel()

			version, err := serverAdapter.GetVersion(ctx)
			if err != nil {
				a.logger.Err(err).Str("func", "*App.versionCommand").Msg("server version unavailable")
				fmt.Fprintf(w, "Server version: %s\n", dim("unavailable"))
				return nil
			}

			fmt.Fprintf(w, "Server version: %s\n", version)
			return nil
		},
	}
}
