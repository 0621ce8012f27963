package main

import (
	goflag "flag"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const envPrefix = "IDXRANGE"

type config struct {
	Workers    int  `mapstructure:"workers"`
	ChunkSize  int  `mapstructure:"chunk-size"`
	DumpRanges bool `mapstructure:"dump-ranges"`
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "idxrange [flags] <input-file>",
		Short: "Consolidate inclusive ranges and count the query values they contain",
		Long: `idxrange reads a list of inclusive ranges, a blank line and a list of
query values. It prints the number of query values inside the ranges,
followed by the number of distinct integers the ranges cover.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), args[0], cfg, klog.NewKlogr().WithName("idxrange"), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	fs.Int("workers", 0, "number of goroutines evaluating queries, 0 uses GOMAXPROCS")
	fs.Int("chunk-size", 0, "query values handled per goroutine at a time, 0 uses the default")
	fs.Bool("dump-ranges", false, "print the consolidated ranges before the results")

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	if err := v.BindPFlags(fs); err != nil {
		panic(err)
	}
	return cmd
}

// loadConfig merges flags, IDXRANGE_* environment variables and the
// optional config file, in that order of precedence.
func loadConfig(v *viper.Viper, cfgFile string) (config, error) {
	var cfg config

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errors.Wrapf(err, "cannot read config %s", cfgFile)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	if cfg.Workers < 0 {
		return cfg, errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.ChunkSize < 0 {
		return cfg, errors.Errorf("chunk-size must not be negative, got %d", cfg.ChunkSize)
	}
	return cfg, nil
}
