package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpsember/dev/pkg/codes"
	"github.com/jpsember/dev/pkg/optional"
)

func newTryImportCmd(a *app) *cobra.Command {
	var advice []string
	cmd := &cobra.Command{
		Use:   "try-import PACKAGE",
		Short: "Check that an optional Go package can be imported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := optional.NewFromConfig(a.cfg.Optional, a.rt.Reporter)
			if err != nil {
				return err
			}
			if msg := h.TryImport(cmd.Context(), args[0], advice...); msg != "" {
				fmt.Fprint(cmd.ErrOrStderr(), msg)
				return codes.Newf(codes.FailedImport, "cannot import %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&advice, "advice", nil, "advice shown when the import fails (repeatable)")
	return cmd
}
