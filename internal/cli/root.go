package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Execute runs the swaggerhub CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

// runEnv carries what a runner needs besides its settings.
type runEnv struct {
	fs     afero.Fs
	stdout io.Writer
	logger hclog.Logger
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "swaggerhub",
		Short:         "Download, upload and promote API definitions on SwaggerHub",
		Long:          "swaggerhub moves OpenAPI/Swagger definitions between local files and a SwaggerHub (or on-premise) registry.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	cmd.SetFlagErrorFunc(flagError)

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file path (YAML or JSON)")
	flags.BoolP("verbose", "v", false, "Enable verbose logging output")
	flags.String("host", defaultHost, "Registry host")
	flags.Int("port", defaultPort, "Registry port")
	flags.String("protocol", defaultProtocol, "Registry protocol (http|https)")
	flags.String("token", "", "API key sent as the Authorization header (default $"+tokenEnv+")")
	flags.Bool("on-premise", false, "Route requests through the on-premise API prefix")
	flags.String("on-premise-api-suffix", defaultSuffix, "On-premise API prefix segment")

	for _, sub := range []*cobra.Command{
		newDownloadCmd(fs),
		newUploadCmd(fs),
		newSetDefaultVersionCmd(fs),
		newInitCmd(fs),
	} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}

	return cmd
}

func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}

// addDefinitionFlags registers the flags naming an API version.
func addDefinitionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("owner", "", "API owner (user or organization)")
	flags.String("api", "", "API name")
	flags.String("version", "", "API version")
}

// prepare resolves settings for cmd and builds the environment its runner
// executes in.
func prepare(cmd *cobra.Command, fs afero.Fs, req requirement) (*Settings, *runEnv, error) {
	s, err := resolveSettings(cmd, fs, req)
	if err != nil {
		return nil, nil, err
	}
	env := &runEnv{
		fs:     fs,
		stdout: cmd.OutOrStdout(),
		logger: newLogger(s.Verbose, cmd.ErrOrStderr()),
	}
	return s, env, nil
}

func newLogger(verbose bool, w io.Writer) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swaggerhub",
		Level:  level,
		Output: w,
	})
}
