package httpclient

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	AuthLocationHeader = "header"
	AuthLocationQuery  = "query"
)

// AuthSettings describes where a static credential is attached to every request.
type AuthSettings struct {
	Location     string
	Name         string
	HeaderPrefix string
}

func BearerAuth() AuthSettings {
	return AuthSettings{
		Location:     AuthLocationHeader,
		Name:         HeaderAuthorization,
		HeaderPrefix: "Bearer ",
	}
}

func (a *AuthSettings) validate() error {
	if a == nil {
		return nil
	}

	if a.Name == "" {
		return fmt.Errorf("%w: empty credential name", ErrInvalidAuth)
	}

	switch a.Location {
	case AuthLocationHeader, AuthLocationQuery:
		return nil
	default:
		return fmt.Errorf("%w: unsupported location %q", ErrInvalidAuth, a.Location)
	}
}

func (a *AuthSettings) apply(rc *resty.Client, token string) {
	if a == nil {
		return
	}

	if a.Location == AuthLocationQuery {
		rc.SetQueryParam(a.Name, token)

		return
	}

	rc.SetHeader(a.Name, a.HeaderPrefix+token)
}
