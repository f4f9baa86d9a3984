package cli

import (
	"context"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mark3labs/swaggerhub/internal/definition"
	"github.com/mark3labs/swaggerhub/internal/swaggerhub"
)

var downloadRunner = runDownload

func newDownloadCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download an API definition",
		Long:  "Download an API definition from the registry and write it to a file or stdout.",
		Example: strings.TrimSpace(`  swaggerhub download --owner example --api petstore --version 1.0.0 --output build/petstore.json
  swaggerhub download --owner example --api petstore --version 1.0.0 --format yaml --resolved`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, env, err := prepare(cmd, fs, requirement{})
			if err != nil {
				return err
			}
			return downloadRunner(cmd.Context(), s, env)
		},
	}

	addDefinitionFlags(cmd)
	flags := cmd.Flags()
	flags.String("format", "", "Definition format (json|yaml); defaults to json")
	flags.Bool("resolved", false, "Request a definition with all references resolved")
	flags.StringP("output", "o", "", "File to write the definition to; stdout when empty or -")
	flags.Bool("validate", false, "Validate the downloaded definition")

	return cmd
}

func runDownload(ctx context.Context, s *Settings, env *runEnv) error {
	env.logger.Info("downloading definition",
		"host", s.Host,
		"api", s.API,
		"owner", s.Owner,
		"version", s.Version,
		"format", s.Format,
		"resolved", s.Resolved,
		"output", s.Output,
		"on_premise", s.OnPremise,
		"on_premise_api_suffix", s.OnPremiseAPISuffix,
	)

	client, err := newClient(s, env.logger)
	if err != nil {
		return err
	}
	req, err := newRequest(s, swaggerhub.WithResolved(s.Resolved))
	if err != nil {
		return err
	}

	content, err := client.Download(ctx, req)
	if err != nil {
		return err
	}

	if s.Validate {
		if err := definition.Validate(ctx, []byte(content)); err != nil {
			return definitionError("downloaded definition", err)
		}
	}

	return writeOutput(env.fs, env.stdout, s.Output, content)
}
