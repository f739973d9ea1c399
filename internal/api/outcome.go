package api

import (
	"errors"

	"github.com/rickgao/disclosure-data/internal/model"
)

// Outcome classifies the result of a Fetch. OutcomeNone means no fetch ran.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeEmpty
	OutcomeAuthError
	OutcomeUpstreamError
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeAuthError:
		return "auth_error"
	case OutcomeUpstreamError:
		return "upstream_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "none"
	}
}

// Classify maps a Fetch return pair to its Outcome. Errors of unknown type
// are treated as transport failures.
func Classify(raw model.RawResult, err error) Outcome {
	if err == nil {
		if raw.Empty() {
			return OutcomeEmpty
		}
		return OutcomeSuccess
	}

	var authErr *AuthError
	var upErr *UpstreamError
	switch {
	case errors.As(err, &authErr):
		return OutcomeAuthError
	case errors.As(err, &upErr):
		return OutcomeUpstreamError
	default:
		return OutcomeTransportError
	}
}
