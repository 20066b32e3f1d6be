package aprov

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// scopeStorage is the OAuth scope requested for storage access tokens.
const scopeStorage = "https://storage.azure.com/.default"

// tokenRefreshMargin is how long before expiry a cached access token is discarded and refetched.
const tokenRefreshMargin = 2 * time.Minute

// Bearer implements the 'Provider' interface attaching OAuth bearer tokens fetched from the given credential, this
// allows the use of Azure AD identities instead of the account key.
type Bearer struct {
	credential azcore.TokenCredential
	userAgent  string

	lock  sync.Mutex
	token azcore.AccessToken
}

var _ Provider = (*Bearer)(nil)

// NewBearer creates a provider which fetches bearer tokens from the given credential.
func NewBearer(credential azcore.TokenCredential, userAgent string) *Bearer {
	return &Bearer{credential: credential, userAgent: userAgent}
}

// NewDefaultBearer creates a provider backed by the default Azure credential chain e.g. the environment, a managed
// identity, then the Azure CLI.
func NewDefaultBearer(userAgent string) (*Bearer, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create default credential: %w", err)
	}

	return NewBearer(credential, userAgent), nil
}

// SignRequest attaches a bearer token 'Authorization' header to the given request.
func (b *Bearer) SignRequest(_ Service, req *http.Request) error {
	token, err := b.accessToken(req.Context())
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	return nil
}

func (b *Bearer) GetUserAgent() string {
	return b.userAgent
}

// accessToken returns a valid access token, fetching a new one when the cached token is close to expiry.
func (b *Bearer) accessToken(ctx context.Context) (string, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.token.Token != "" && time.Until(b.token.ExpiresOn) > tokenRefreshMargin {
		return b.token.Token, nil
	}

	token, err := b.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scopeStorage}})
	if err != nil {
		return "", err
	}

	b.token = token

	return token.Token, nil
}
