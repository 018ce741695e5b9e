package cli

import (
	"github.com/spf13/cobra"
	"github.com/sunthewhat/easy-cert-generator/common/config"
	"github.com/sunthewhat/easy-cert-generator/type/shared"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logJSON    bool
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "easy-cert",
		Short: "Certificate rendering and batch generation",
		Long: `easy-cert renders participant certificates from a background image and a field layout.
It runs either as an HTTP API for the editor UI or as a one-shot batch generator.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to config.yml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error), overrides config")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Emit JSON logs")
	cmd.AddCommand(
		newServeCmd(opts),
		newGenerateCmd(opts),
	)
	return cmd
}

// load reads the config file and installs the logger it asks for.
func (o *rootOptions) load() (*shared.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	SetupLogger(level, o.logJSON)
	return cfg, nil
}
