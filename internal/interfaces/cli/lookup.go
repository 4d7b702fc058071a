package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <domain>",
		Short: "Query RDAP and WHOIS for a domain's registration record",
		Long:  "Queries RDAP and WHOIS concurrently, merges both views and prints the\nreconciled registrar record with its confidence score.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			rec, err := cliCtx.Service.LookupRegistrar(ctx, args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, rec)
		},
	}
}
