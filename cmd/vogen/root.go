package main

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/syssam/vogen/compiler"
	"github.com/syssam/vogen/compiler/gen"
)

// settings are the resolved command line settings.
type settings struct {
	Paths     []string      `mapstructure:"paths"`
	Target    string        `mapstructure:"target"`
	Package   string        `mapstructure:"package"`
	Header    string        `mapstructure:"header"`
	Workers   int           `mapstructure:"workers"`
	Directive string        `mapstructure:"directive"`
	CacheDir  string        `mapstructure:"cache-dir"`
	Disable   []string      `mapstructure:"disable"`
	Debounce  time.Duration `mapstructure:"debounce"`
	LogLevel  string        `mapstructure:"log-level"`
	LogJSON   bool          `mapstructure:"log-json"`
}

// app carries the state shared by the commands.
type app struct {
	v   *viper.Viper
	cfg settings
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "vogen",
		Short: "Generate Go enumerations, value objects and unions from declarations",
		Long: `vogen reads declaration files (YAML or JSON) and generates the complete Go
implementation of the types carrying a vogen directive: keyed and extensible
enumerations, value objects, complex value objects and closed unions.

Examples:
  vogen generate ./types                 # Generate next to the declarations
  vogen generate ./types -o ./gen        # Generate into ./gen
  vogen watch ./types --cache-dir .vogen # Regenerate on every change`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	f := root.PersistentFlags()
	f.String("config", "", "config file (default ./vogen.yaml)")
	f.StringP("target", "o", "", "output directory (default: next to the declaration files)")
	f.String("package", "", "import path of declarations that do not declare one")
	f.String("header", "", "header comment of generated files")
	f.IntP("workers", "w", 0, "parallel workers (default GOMAXPROCS)")
	f.String("directive", "", "directive marking candidates (default vogen)")
	f.String("cache-dir", "", "persist generated artifacts in this directory")
	f.StringSlice("disable", nil, "concerns not to generate (see vogen features)")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.Bool("log-json", false, "log JSON lines")

	root.AddCommand(newGenerateCmd(a), newWatchCmd(a), newFeaturesCmd())
	return root
}

// init resolves the settings and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	v := a.v
	v.SetEnvPrefix("VOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("debounce", compiler.DefaultDebounce)
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("vogen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "read config")
		}
	}
	if err := v.Unmarshal(&a.cfg); err != nil {
		return errors.Wrap(err, "decode config")
	}
	log, err := newLogger(a.cfg.LogLevel, a.cfg.LogJSON)
	if err != nil {
		return err
	}
	a.log = log
	if file := v.ConfigFileUsed(); file != "" {
		log.Debug("config", zap.String("file", file))
	}
	return nil
}

func newLogger(level string, json bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	cfg := zap.NewDevelopmentConfig()
	if json {
		cfg = zap.NewProductionConfig()
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	cfg.Level = lvl
	return cfg.Build()
}

// options returns the generator options of the settings.
func (a *app) options() ([]gen.Option, error) {
	c := a.cfg
	opts := []gen.Option{gen.WithLogger(a.log)}
	if c.Target != "" {
		opts = append(opts, gen.WithTarget(c.Target))
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.Workers != 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	if c.Directive != "" {
		opts = append(opts, gen.WithDirectiveName(c.Directive))
	}
	if len(c.Disable) > 0 {
		opts = append(opts, gen.WithoutFeatures(c.Disable...))
	}
	if c.CacheDir != "" {
		store, err := gen.OpenDiskStore(c.CacheDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithStore(store))
	}
	return opts, nil
}

// paths returns the declaration paths of the arguments, falling back to the
// configured paths and then to the working directory.
func (a *app) paths(args []string) []string {
	switch {
	case len(args) > 0:
		return args
	case len(a.cfg.Paths) > 0:
		return a.cfg.Paths
	default:
		return []string{"."}
	}
}

func (a *app) session() (*compiler.Session, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	return compiler.NewSession(opts...)
}
