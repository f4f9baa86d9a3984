package swaggerhub

const (
	DefaultFormat             = "json"
	DefaultOnPremiseAPISuffix = "v1"
)

// Request describes a single API definition on the documentation host.
// Build it with NewRequest; the client only ever reads it.
type Request struct {
	Owner   string `validate:"required"`
	API     string `validate:"required"`
	Version string `validate:"required"`

	// Definition is the full text of the API definition. Upload only.
	Definition string
	// OAS is the OpenAPI version tag sent on upload.
	OAS string

	Format    string
	IsPrivate bool
	Resolved  bool

	// OnPremise and OnPremiseAPISuffix mirror the routing the request was
	// built for. URL routing itself follows the client's Config.
	OnPremise          bool
	OnPremiseAPISuffix string
}

// RequestOption sets an optional Request field.
type RequestOption func(*Request)

func WithDefinition(text string) RequestOption { return func(r *Request) { r.Definition = text } }
func WithOAS(version string) RequestOption     { return func(r *Request) { r.OAS = version } }
func WithFormat(format string) RequestOption   { return func(r *Request) { r.Format = format } }
func WithPrivate(private bool) RequestOption   { return func(r *Request) { r.IsPrivate = private } }
func WithResolved(resolved bool) RequestOption { return func(r *Request) { r.Resolved = resolved } }

// WithOnPremise marks the request as targeting a self-hosted deployment
// reached through suffix. An empty suffix keeps the default.
func WithOnPremise(onPremise bool, suffix string) RequestOption {
	return func(r *Request) {
		r.OnPremise = onPremise
		r.OnPremiseAPISuffix = suffix
	}
}

// NewRequest builds a Request, applying defaults for every optional field
// left unset. Owner, api and version are required.
func NewRequest(owner, api, version string, opts ...RequestOption) (Request, error) {
	r := Request{
		Owner:              owner,
		API:                api,
		Version:            version,
		Format:             DefaultFormat,
		OnPremiseAPISuffix: DefaultOnPremiseAPISuffix,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.Format == "" {
		r.Format = DefaultFormat
	}
	if r.OnPremiseAPISuffix == "" {
		r.OnPremiseAPISuffix = DefaultOnPremiseAPISuffix
	}
	if err := validate.Struct(r); err != nil {
		return Request{}, validationError(OpConfigure, err)
	}
	return r, nil
}
