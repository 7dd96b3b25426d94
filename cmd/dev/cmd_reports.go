package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpsember/dev/pkg/codes"
)

func newReportsCmd(a *app) *cobra.Command {
	var count int64
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Show recent failure reports stored in Redis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.rt.RedisPublisher()
			if p == nil {
				return codes.New(codes.IllegalState, "redis is not enabled")
			}
			reports, err := p.Recent(cmd.Context(), count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range reports {
				fmt.Fprintf(out, "%s %s %s (at %s)\n", r.Time.Format("2006-01-02T15:04:05Z"), r.ID, r.Headline(), r.Location)
			}
			return nil
		},
	}
	cmd.Flags().Int64VarP(&count, "count", "n", 20, "number of reports")
	return cmd
}
