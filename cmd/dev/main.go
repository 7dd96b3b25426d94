// Command dev lists the error code registry, checks optional imports and
// collects error code tables from source trees.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpsember/dev/pkg/bootstrap"
	"github.com/jpsember/dev/pkg/codes"
	"github.com/jpsember/dev/pkg/config"
	log "github.com/jpsember/dev/pkg/logger"
)

type app struct {
	configFile string
	configDir  string
	logLevel   string

	cfg *config.Config
	rt  *bootstrap.Runtime
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "dev",
		Short:         "Error code and optional import tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.rt.Close(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./configs/config_<APP_ENV>.yaml)")
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "./configs", "directory searched for config_<APP_ENV>.yaml")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level")

	root.AddCommand(
		newCodesCmd(a),
		newTryImportCmd(a),
		newCollectCmd(a),
		newReportsCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:    a.configDir,
		ConfigFile:    a.configFile,
		AllowNoConfig: a.configFile == "",
	})
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	rt, err := bootstrap.Init(ctx, cfg)
	if err != nil {
		return err
	}
	a.cfg, a.rt = cfg, rt
	return nil
}

// alreadyReported is true for errors whose failure went through the
// Reporter before the command returned.
func alreadyReported(err error) bool {
	return codes.CodeOf(err) == codes.FailedImport
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if !alreadyReported(err) {
			log.WithErr(nil, err).Error("dev failed")
		}
		os.Exit(1)
	}
}
