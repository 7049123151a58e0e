package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register this client with the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdtpClient, err := a.newClient()
			if err != nil {
				return err
			}
			defer sdtpClient.Close()

			if err := sdtpClient.Register(cmd.Context()); err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered with %s\n", sdtpClient.BaseURL())
			return nil
		},
	}

	return cmd
}
