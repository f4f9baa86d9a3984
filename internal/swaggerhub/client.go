package swaggerhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-hclog"
)

const (
	// UserAgent identifies this tool to the documentation host.
	UserAgent = "swaggerhub-cli"

	apisSegment     = "apis"
	mediaTypeFormat = "application/%s; charset=utf-8"
	jsonMediaType   = "application/json; charset=utf-8"
)

var validate = validator.New()

// Config holds the connection settings of a Client.
type Config struct {
	Host     string `validate:"required"`
	Protocol string `validate:"required,oneof=http https"`
	// Port is appended to the host unless zero.
	Port int `validate:"gte=0,lte=65535"`
	// Token is sent verbatim as the Authorization header when set.
	Token string

	OnPremise          bool
	OnPremiseAPISuffix string

	// HTTPClient executes requests. A new client is created when nil.
	HTTPClient *http.Client `validate:"-"`
	Logger     hclog.Logger `validate:"-"`
}

// Client talks to a SwaggerHub compatible registry. It holds no mutable
// state and may be shared between goroutines.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     hclog.Logger
}

// New validates cfg and returns a Client bound to it.
func New(cfg Config) (*Client, error) {
	if cfg.OnPremiseAPISuffix == "" {
		cfg.OnPremiseAPISuffix = DefaultOnPremiseAPISuffix
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, validationError(OpConfigure, err)
	}

	c := &Client{cfg: cfg, httpClient: cfg.HTTPClient, logger: cfg.Logger}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	return c, nil
}

// Download fetches an API definition and returns it verbatim.
func (c *Client) Download(ctx context.Context, r Request) (string, error) {
	u := c.endpoint(r.Owner, r.API, r.Version)
	u.RawQuery = "resolved=" + strconv.FormatBool(r.Resolved)

	header := c.header()
	header.Set("Accept", mediaType(r.Format))

	return c.do(ctx, OpDownload, http.MethodGet, u, header, nil)
}

// Upload stores r.Definition as the given version of the API.
func (c *Client) Upload(ctx context.Context, r Request) error {
	if r.Definition == "" {
		return configError(OpUpload, "definition is empty", nil)
	}

	u := c.endpoint(r.Owner, r.API)
	// Parameter order is part of the wire contract, so url.Values is not used.
	query := "version=" + url.QueryEscape(r.Version) +
		"&isPrivate=" + strconv.FormatBool(r.IsPrivate)
	if r.OAS != "" {
		query += "&oas=" + url.QueryEscape(r.OAS)
	}
	u.RawQuery = query

	header := c.header()
	header.Set("Content-Type", mediaType(r.Format))

	_, err := c.do(ctx, OpUpload, http.MethodPost, u, header, strings.NewReader(r.Definition))
	return err
}

// SetDefaultVersion makes r.Version the version served by default.
func (c *Client) SetDefaultVersion(ctx context.Context, r Request) error {
	u := c.endpoint(r.Owner, r.API, "settings", "default")

	version, err := json.Marshal(r.Version)
	if err != nil {
		return configError(OpSetDefault, "encode version", err)
	}
	body := `{"version": ` + string(version) + `}`

	header := c.header()
	header.Set("Content-Type", jsonMediaType)

	_, err = c.do(ctx, OpSetDefault, http.MethodPut, u, header, strings.NewReader(body))
	return err
}

func (c *Client) header() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", UserAgent)
	if c.cfg.Token != "" {
		h.Set("Authorization", c.cfg.Token)
	}
	return h
}

// endpoint builds {scheme}://{host}:{port}[/{suffix}]/apis/{segments...}.
// Each segment is escaped on its own so '/' inside a value never splits it.
func (c *Client) endpoint(segments ...string) *url.URL {
	all := make([]string, 0, len(segments)+2)
	if c.cfg.OnPremise {
		all = append(all, c.cfg.OnPremiseAPISuffix)
	}
	all = append(all, apisSegment)
	all = append(all, segments...)

	escaped := make([]string, len(all))
	for i, s := range all {
		escaped[i] = url.PathEscape(s)
	}

	host := c.cfg.Host
	if c.cfg.Port != 0 {
		host = net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	}
	return &url.URL{
		Scheme:  c.cfg.Protocol,
		Host:    host,
		Path:    "/" + strings.Join(all, "/"),
		RawPath: "/" + strings.Join(escaped, "/"),
	}
}

func (c *Client) do(ctx context.Context, op Op, method string, u *url.URL, header http.Header, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return "", configError(op, fmt.Sprintf("build request: %v", err), err)
	}
	req.Header = header

	c.logger.Debug("sending request", "op", string(op), "method", method, "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Op: op, Code: TransportError, Message: err.Error(), Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Op: op, Code: TransportError, Status: resp.StatusCode,
			Message: fmt.Sprintf("read response: %v", err), Cause: err}
	}

	c.logger.Debug("received response", "op", string(op), "status", resp.StatusCode, "bytes", len(data))

	if len(data) == 0 {
		return "", &Error{Op: op, Code: EmptyResponseError, Status: resp.StatusCode,
			Message: "response body is empty"}
	}
	text := string(data)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{Op: op, Code: StatusError, Status: resp.StatusCode, Body: text,
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, text)}
	}
	return text, nil
}

// mediaType returns application/{format}; charset=utf-8, or the JSON media
// type when format does not form a valid media subtype.
func mediaType(format string) string {
	mt := fmt.Sprintf(mediaTypeFormat, format)
	if _, _, err := mime.ParseMediaType(mt); err != nil {
		return fmt.Sprintf(mediaTypeFormat, DefaultFormat)
	}
	return mt
}
