package swaggerhub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode categorizes client failures.
type ErrorCode string

const (
	ConfigError        ErrorCode = "ConfigError"
	EmptyResponseError ErrorCode = "EmptyResponseError"
	StatusError        ErrorCode = "StatusError"
	TransportError     ErrorCode = "TransportError"
)

var (
	ErrConfig             = errors.New("swaggerhub: configuration error")
	ErrEmptyResponse      = errors.New("swaggerhub: empty response body")
	ErrUnsuccessfulStatus = errors.New("swaggerhub: unsuccessful status")
	ErrTransport          = errors.New("swaggerhub: transport error")
)

// Op names the client operation an Error belongs to.
type Op string

const (
	OpDownload   Op = "download"
	OpUpload     Op = "upload"
	OpSetDefault Op = "set default version"
	OpConfigure  Op = "configure"
)

func (o Op) prefix() string {
	switch o {
	case OpDownload:
		return "failed to download API definition"
	case OpUpload:
		return "failed to upload API definition"
	case OpSetDefault:
		return "failed to set default version"
	default:
		return "invalid configuration"
	}
}

// Error is the single failure type returned by the client.
type Error struct {
	Op      Op
	Code    ErrorCode
	Message string
	Status  int    // HTTP status, zero when no response was received
	Body    string // response body, if any
	Cause   error
}

func (e *Error) Error() string {
	return e.Op.prefix() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the sentinel for the error's code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfig:
		return e.Code == ConfigError
	case ErrEmptyResponse:
		return e.Code == EmptyResponseError
	case ErrUnsuccessfulStatus:
		return e.Code == StatusError
	case ErrTransport:
		return e.Code == TransportError
	}
	return false
}

func configError(op Op, msg string, cause error) *Error {
	return &Error{Op: op, Code: ConfigError, Message: msg, Cause: cause}
}

// validationError renders validator failures as "field: reason" pairs.
func validationError(op Op, err error) *Error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return configError(op, err.Error(), err)
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msgs = append(msgs, ve.Field()+": "+formatValidationError(ve))
	}
	return configError(op, strings.Join(msgs, "; "), err)
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
