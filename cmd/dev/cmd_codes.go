package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpsember/dev/pkg/codes"
)

func newCodesCmd(_ *app) *cobra.Command {
	var (
		band   string
		asJSON bool
		check  bool
	)
	cmd := &cobra.Command{
		Use:   "codes [SYMBOL...]",
		Short: "List registered error codes",
		Long: `Lists the error code registry. Symbols may be given with or without the
legacy ERRCODE_ / ERROR_ prefixes to look up single entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				if err := codes.Validate(codes.All()); err != nil {
					return codes.Wrap(err, codes.IllegalState, "registry invalid")
				}
			}

			list, err := selectCodes(args, band)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			for _, ec := range list {
				fmt.Fprintf(out, "%5d %-18s %s\n", int(ec.Numeric), ec.Symbol, ec.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&band, "band", "", "only list one band: argument, test, not_implemented")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&check, "check", false, "validate the registry first")
	return cmd
}

func selectCodes(symbols []string, band string) ([]codes.ErrorCode, error) {
	var list []codes.ErrorCode
	if len(symbols) == 0 {
		list = codes.All()
	}
	for _, s := range symbols {
		ec, ok := codes.Lookup(s)
		if !ok {
			return nil, codes.Newf(codes.BadArgument, "unknown error code %q", s)
		}
		list = append(list, ec)
	}
	if band == "" {
		return list, nil
	}

	filtered := list[:0]
	for _, ec := range list {
		if strings.EqualFold(ec.Numeric.Band().String(), band) {
			filtered = append(filtered, ec)
		}
	}
	if len(filtered) == 0 {
		return nil, codes.Newf(codes.BadArgument, "no codes in band %q", band)
	}
	return filtered, nil
}
