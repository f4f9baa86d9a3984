package cli

import (
	"errors"
	"fmt"

	"github.com/mark3labs/swaggerhub/internal/definition"
	"github.com/mark3labs/swaggerhub/internal/swaggerhub"
)

var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

// clientError turns configuration problems reported by the registry client
// into usage errors; request failures are returned as they are.
func clientError(err error) error {
	if errors.Is(err, swaggerhub.ErrConfig) {
		return newUsageError(err.Error())
	}
	return err
}

// definitionError maps structured definition errors into friendly messages.
func definitionError(subject string, err error) error {
	var de *definition.DefinitionError
	if errors.As(err, &de) {
		msg := fmt.Sprintf("%s: %s", subject, de.Message)
		if de.JSONPointer != "" {
			msg = fmt.Sprintf("%s\nPointer: %s", msg, de.JSONPointer)
		}
		return newUsageError(msg)
	}
	return fmt.Errorf("%s: %w", subject, err)
}
