package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpsember/dev/pkg/collect"
	log "github.com/jpsember/dev/pkg/logger"
)

func newCollectCmd(a *app) *cobra.Command {
	var input, output string
	var extensions []string
	cmd := &cobra.Command{
		Use:   "collect-errs",
		Short: "Collect error codes into a table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := collect.OptionsFromConfig(a.cfg.Collect)
			if input != "" {
				opts.Input = input
			}
			if len(extensions) > 0 {
				opts.Extensions = extensions
			}
			if output == "" {
				output = a.cfg.Collect.Output
			}

			table, err := collect.Collect(cmd.Context(), opts)
			if err != nil {
				return err
			}
			text := table.Format()

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			changed, err := collect.WriteIfChanged(output, text)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"output": output, "entries": len(table.Entries), "changed": changed}).Info("error table written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "source directory (default collect.input)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout when empty")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "file extensions to scan")
	return cmd
}
