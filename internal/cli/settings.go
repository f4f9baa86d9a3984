package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	defaultHost     = "api.swaggerhub.com"
	defaultPort     = 443
	defaultProtocol = "https"
	defaultSuffix   = "v1"
	// defaultOAS is used on upload when the document does not declare a version.
	defaultOAS = "2.0"

	tokenEnv = "SWAGGERHUB_TOKEN"
)

// Settings captures every input of a registry command after merging
// defaults, the config file, the environment and CLI overrides. Config file
// keys are matched after lowercasing and dropping '-' and '_'.
type Settings struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Protocol           string `mapstructure:"protocol"`
	Token              string `mapstructure:"token"`
	OnPremise          bool   `mapstructure:"onpremise"`
	OnPremiseAPISuffix string `mapstructure:"onpremiseapisuffix"`

	Owner   string `mapstructure:"owner"`
	API     string `mapstructure:"api"`
	Version string `mapstructure:"version"`
	// Format is empty unless set; upload then uses the document's own format.
	Format    string `mapstructure:"format"`
	Resolved  bool   `mapstructure:"resolved"`
	IsPrivate bool   `mapstructure:"isprivate"`
	OAS       string `mapstructure:"oas"`
	Input     string `mapstructure:"input"`
	Output    string `mapstructure:"output"`
	Validate  bool   `mapstructure:"validate"`
	Verbose   bool   `mapstructure:"verbose"`

	ConfigPath string `mapstructure:"-"`
}

func defaultSettings() Settings {
	return Settings{
		Host:               defaultHost,
		Port:               defaultPort,
		Protocol:           defaultProtocol,
		OnPremiseAPISuffix: defaultSuffix,
	}
}

// requirement lists the settings a command cannot run without.
type requirement struct {
	input bool
	token bool
}

func resolveSettings(cmd *cobra.Command, fs afero.Fs, req requirement) (*Settings, error) {
	s := defaultSettings()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		s.ConfigPath = configPath
		if err := applySettingsFromFile(fs, &s, configPath); err != nil {
			return nil, err
		}
	}

	if token := strings.TrimSpace(os.Getenv(tokenEnv)); token != "" {
		s.Token = token
	}

	if err := applyFlagOverrides(cmd.Flags(), &s); err != nil {
		return nil, err
	}

	s.normalize()
	if err := s.validate(cmd.Name(), req); err != nil {
		return nil, err
	}
	return &s, nil
}

func applySettingsFromFile(fs afero.Fs, s *Settings, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	normalized := make(map[string]any, len(raw))
	for key, value := range raw {
		normalized[normalizeKey(key)] = value
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           s,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(normalized); err != nil {
		return newUsageError(fmt.Sprintf("config file %q: %v", path, err))
	}
	return nil
}

func applyFlagOverrides(flags *pflag.FlagSet, s *Settings) error {
	strs := map[string]*string{
		"host":                  &s.Host,
		"protocol":              &s.Protocol,
		"token":                 &s.Token,
		"on-premise-api-suffix": &s.OnPremiseAPISuffix,
		"owner":                 &s.Owner,
		"api":                   &s.API,
		"version":               &s.Version,
		"format":                &s.Format,
		"oas":                   &s.OAS,
		"input":                 &s.Input,
		"output":                &s.Output,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
	}

	bools := map[string]*bool{
		"on-premise": &s.OnPremise,
		"resolved":   &s.Resolved,
		"private":    &s.IsPrivate,
		"validate":   &s.Validate,
		"verbose":    &s.Verbose,
	}
	for name, dst := range bools {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	if flags.Changed("port") {
		value, err := flags.GetInt("port")
		if err != nil {
			return err
		}
		s.Port = value
	}
	return nil
}

func (s *Settings) normalize() {
	s.Host = strings.TrimSpace(s.Host)
	s.Protocol = strings.ToLower(strings.TrimSpace(s.Protocol))
	s.Token = strings.TrimSpace(s.Token)
	s.OnPremiseAPISuffix = strings.Trim(strings.TrimSpace(s.OnPremiseAPISuffix), "/")
	if s.OnPremiseAPISuffix == "" {
		s.OnPremiseAPISuffix = defaultSuffix
	}
	s.Owner = strings.TrimSpace(s.Owner)
	s.API = strings.TrimSpace(s.API)
	s.Version = strings.TrimSpace(s.Version)
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	s.OAS = strings.TrimSpace(s.OAS)
	s.Input = strings.TrimSpace(s.Input)
	s.Output = strings.TrimSpace(s.Output)
}

// validate reports every missing setting at once.
func (s *Settings) validate(command string, req requirement) error {
	var result *multierror.Error

	if s.Owner == "" {
		result = multierror.Append(result, fmt.Errorf("--owner is required"))
	}
	if s.API == "" {
		result = multierror.Append(result, fmt.Errorf("--api is required"))
	}
	if s.Version == "" {
		result = multierror.Append(result, fmt.Errorf("--version is required"))
	}
	if s.Host == "" {
		result = multierror.Append(result, fmt.Errorf("--host must not be empty"))
	}
	switch s.Protocol {
	case "http", "https":
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported --protocol %q (allowed: http, https)", s.Protocol))
	}
	if s.Port < 0 || s.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("--port %d is out of range", s.Port))
	}
	if req.input && s.Input == "" {
		result = multierror.Append(result, fmt.Errorf("--input is required"))
	}
	if req.token && s.Token == "" {
		result = multierror.Append(result, fmt.Errorf("--token is required (or set %s)", tokenEnv))
	}

	if err := result.ErrorOrNil(); err != nil {
		return newUsageError(fmt.Sprintf("%s: %v", command, err))
	}
	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}
