package cli

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var setDefaultVersionRunner = runSetDefaultVersion

func newSetDefaultVersionCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set-default-version",
		Aliases: []string{"set-default"},
		Short:   "Make a version the default version of an API",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, env, err := prepare(cmd, fs, requirement{token: true})
			if err != nil {
				return err
			}
			return setDefaultVersionRunner(cmd.Context(), s, env)
		},
	}
	addDefinitionFlags(cmd)
	return cmd
}

func runSetDefaultVersion(ctx context.Context, s *Settings, env *runEnv) error {
	env.logger.Info("setting default version",
		"host", s.Host,
		"api", s.API,
		"owner", s.Owner,
		"version", s.Version,
		"on_premise", s.OnPremise,
		"on_premise_api_suffix", s.OnPremiseAPISuffix,
	)

	client, err := newClient(s, env.logger)
	if err != nil {
		return err
	}
	req, err := newRequest(s)
	if err != nil {
		return err
	}
	return client.SetDefaultVersion(ctx, req)
}
