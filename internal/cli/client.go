package cli

import (
	"github.com/hashicorp/go-hclog"

	"github.com/mark3labs/swaggerhub/internal/swaggerhub"
)

func newClient(s *Settings, logger hclog.Logger) (*swaggerhub.Client, error) {
	c, err := swaggerhub.New(swaggerhub.Config{
		Host:               s.Host,
		Port:               s.Port,
		Protocol:           s.Protocol,
		Token:              s.Token,
		OnPremise:          s.OnPremise,
		OnPremiseAPISuffix: s.OnPremiseAPISuffix,
		Logger:             logger.Named("client"),
	})
	if err != nil {
		return nil, clientError(err)
	}
	return c, nil
}

// newRequest builds the descriptor shared by all commands; opts add the
// command specific fields.
func newRequest(s *Settings, opts ...swaggerhub.RequestOption) (swaggerhub.Request, error) {
	opts = append([]swaggerhub.RequestOption{
		swaggerhub.WithFormat(s.Format),
		swaggerhub.WithOnPremise(s.OnPremise, s.OnPremiseAPISuffix),
	}, opts...)
	r, err := swaggerhub.NewRequest(s.Owner, s.API, s.Version, opts...)
	if err != nil {
		return swaggerhub.Request{}, clientError(err)
	}
	return r, nil
}
