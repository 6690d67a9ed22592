package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/fittings/internal/app"
	"github.com/vk/fittings/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Keys shared by flags, environment (FITTINGS_ prefix, dashes as
// underscores) and the config file.
const (
	keyConfig       = "config"
	keyDeclarations = "declarations"
	keyFramework    = "framework"
	keyLogLevel     = "log-level"
	keyLogFormat    = "log-format"
	keyPort         = "port"
	keyRelayURL     = "relay-url"
)

// cli carries what every subcommand needs.
type cli struct {
	outW   io.Writer
	errW   io.Writer
	loader config.Loader
	v      *viper.Viper
}

// NewRootCommand builds the fittings command tree. Command output goes to
// outW, logs to errW. Each call gets its own viper instance.
func NewRootCommand(outW, errW io.Writer, loader config.Loader) *cobra.Command {
	c := &cli{outW: outW, errW: errW, loader: loader, v: viper.New()}

	root := &cobra.Command{
		Use:   "fittings",
		Short: "Resolve, render and serve framework declarations.",
		Long: `fittings loads framework declarations (.hcl or .yaml), resolves their
library references, substitutes {prefix:KEY} tags in their string properties
and wires their middleware, plugins and listeners into an in-memory host.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("%s", err.Error())
	})

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (default is ./.fittings.yaml)")
	flags.StringSliceP(keyDeclarations, "d", nil, "declaration files or directories")
	flags.StringP(keyFramework, "f", "", "framework to use when several are declared")
	flags.String(keyLogLevel, "info", "logging level: 'debug', 'info', 'warn', 'error'")
	flags.String(keyLogFormat, "text", "log output format: 'text' or 'json'")
	_ = c.v.BindPFlags(flags)

	root.AddCommand(
		c.renderCommand(),
		c.libraryCommand(),
		c.inspectCommand(),
		c.serveCommand(),
	)
	return root
}

// initConfig layers the config file and environment under the flags.
func (c *cli) initConfig() error {
	c.v.SetEnvPrefix("FITTINGS")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	cfgFile := c.v.GetString(keyConfig)
	if cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
	} else {
		c.v.AddConfigPath(".")
		c.v.SetConfigType("yaml")
		c.v.SetConfigName(".fittings")
	}

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			slog.Debug("No config file found, using flags and environment.")
			return nil
		}
		return usageError("reading config file: %v", err)
	}
	slog.Debug("Using config file.", "file", c.v.ConfigFileUsed())
	return nil
}

// newApp validates the merged configuration and builds the application.
func (c *cli) newApp() (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		Declarations: c.v.GetStringSlice(keyDeclarations),
		Framework:    c.v.GetString(keyFramework),
		LogFormat:    strings.ToLower(c.v.GetString(keyLogFormat)),
		LogLevel:     strings.ToLower(c.v.GetString(keyLogLevel)),
		Port:         c.v.GetInt(keyPort),
		RelayURL:     c.v.GetString(keyRelayURL),
	})
	if err != nil {
		return nil, usageError("%s", err.Error())
	}
	return app.NewApp(c.outW, c.errW, cfg, c.loader)
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, loader config.Loader) error {
	root := NewRootCommand(outW, errW, loader)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
