package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const defaultConfigName = "swaggerhub.yaml"

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
}

func newInitCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample swaggerhub configuration file",
		Long:  "Scaffold a commented swaggerhub configuration file that documents available options.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return runInit(fs, cmd.OutOrStdout(), &InitConfig{OutputPath: out, Force: force})
		},
	}

	cmd.Flags().String("out", defaultConfigName, "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(fs afero.Fs, stdout io.Writer, cfg *InitConfig) error {
	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = defaultConfigName
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	if st, err := fs.Stat(absPath); err == nil && !cfg.Force {
		if st.Mode().IsRegular() {
			return newUsageError(fmt.Sprintf("init: %q already exists (use --force to overwrite)", absPath))
		}
	}

	content := strings.TrimSpace(sampleConfigYAML) + "\n"
	if err := writeOutput(fs, stdout, absPath, content); err != nil {
		return newUsageError(fmt.Sprintf("init: %v", err))
	}
	fmt.Fprintf(stdout, "Wrote sample config to %s\n", absPath)
	return nil
}

// sampleConfigYAML is a commented example config documenting available options.
const sampleConfigYAML = `# swaggerhub configuration (YAML)
# All fields are optional. Environment and command-line flags override config values.

# Registry connection. Defaults target the public SwaggerHub.
# host: api.swaggerhub.com
# port: 443
# protocol: https

# API key sent as the Authorization header. Prefer the SWAGGERHUB_TOKEN
# environment variable over storing it here.
# token: ""

# Self-hosted registries are reached through an extra path prefix.
# onPremise: false
# onPremiseApiSuffix: v1

# The API version every command works on.
# owner: example
# api: petstore
# version: 1.0.0

# Definition format (json|yaml). Upload detects it from the input when omitted.
# format: json

# download: request a definition with all references resolved.
# resolved: false

# download: file to write the definition to (stdout when omitted).
# output: build/petstore.json

# upload: definition file, visibility and OpenAPI version (detected when omitted).
# input: petstore.yaml
# isPrivate: false
# oas: 3.0.0

# Validate definitions with kin-openapi before upload / after download.
# validate: false

# Enable verbose logging.
# verbose: false
`
