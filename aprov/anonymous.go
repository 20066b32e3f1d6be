package aprov

import "net/http"

// Anonymous implements the 'Provider' interface without attaching any credentials, it may be used to access containers
// which allow public access, or with endpoints which already carry a SAS token.
type Anonymous struct {
	UserAgent string
}

var _ Provider = (*Anonymous)(nil)

func (a *Anonymous) SignRequest(_ Service, _ *http.Request) error {
	return nil
}

func (a *Anonymous) GetUserAgent() string {
	return a.UserAgent
}
