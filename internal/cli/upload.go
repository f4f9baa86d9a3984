package cli

import (
	"context"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mark3labs/swaggerhub/internal/definition"
	"github.com/mark3labs/swaggerhub/internal/swaggerhub"
)

var uploadRunner = runUpload

func newUploadCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload an API definition",
		Long: "Upload an API definition file as a version of an API. " +
			"The OAS version and format are taken from the document unless given explicitly.",
		Example: strings.TrimSpace(`  swaggerhub upload --owner example --api petstore --version 1.0.0 --input petstore.yaml
  swaggerhub --on-premise --host registry.internal upload --owner example --api petstore --version 1.0.1 --input petstore.json --private`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, env, err := prepare(cmd, fs, requirement{input: true, token: true})
			if err != nil {
				return err
			}
			return uploadRunner(cmd.Context(), s, env)
		},
	}

	addDefinitionFlags(cmd)
	flags := cmd.Flags()
	flags.StringP("input", "i", "", "Definition file to upload")
	flags.String("format", "", "Definition format (json|yaml); detected from the file when omitted")
	flags.Bool("private", false, "Make the API private")
	flags.String("oas", "", "OpenAPI version of the definition; detected from the file when omitted")
	flags.Bool("validate", false, "Validate the definition before uploading")

	return cmd
}

func runUpload(ctx context.Context, s *Settings, env *runEnv) error {
	data, err := readInput(env.fs, s.Input)
	if err != nil {
		return err
	}

	format, oas := s.Format, s.OAS
	if format == "" || oas == "" {
		info, err := definition.Detect(data)
		switch {
		case err == nil:
			env.logger.Debug("detected definition", "format", info.Format, "oas", info.OAS, "title", info.Title)
			if format == "" {
				format = info.Format
			}
			if oas == "" {
				oas = info.OAS
			}
		case oas == "":
			env.logger.Warn("could not detect OAS version, using default", "default", defaultOAS, "error", err)
			oas = defaultOAS
		}
	}

	if s.Validate {
		if err := definition.Validate(ctx, data); err != nil {
			return definitionError("definition "+s.Input, err)
		}
	}

	env.logger.Info("uploading definition",
		"host", s.Host,
		"api", s.API,
		"owner", s.Owner,
		"version", s.Version,
		"input", s.Input,
		"format", format,
		"is_private", s.IsPrivate,
		"oas", oas,
		"on_premise", s.OnPremise,
		"on_premise_api_suffix", s.OnPremiseAPISuffix,
	)

	client, err := newClient(s, env.logger)
	if err != nil {
		return err
	}
	req, err := newRequest(s,
		swaggerhub.WithFormat(format),
		swaggerhub.WithDefinition(string(data)),
		swaggerhub.WithOAS(oas),
		swaggerhub.WithPrivate(s.IsPrivate),
	)
	if err != nil {
		return err
	}

	return client.Upload(ctx, req)
}
