package log

import (
	"net/url"
	"strings"

	"golang.org/x/exp/slices"
)

// maskedQueryValues are the query parameters whose values grant access to a storage account, they must not make it
// into the logs in plain text.
var maskedQueryValues = []string{"sig"}

// MaskQueryValues returns the given raw URL with the values of the parameters named in keys replaced by a fix number
// of *. The remainder of the URL is returned untouched, preserving parameter order/encoding.
func MaskQueryValues(rawURL string, keys []string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	pairs := strings.Split(parsed.RawQuery, "&")

	var masked bool

	for i, pair := range pairs {
		key, _, found := strings.Cut(pair, "=")
		if !found || !slices.Contains(keys, key) {
			continue
		}

		pairs[i] = key + "=*****" // Mask with fix length to avoid revealing any details about the string.

		masked = true
	}

	if !masked {
		return rawURL
	}

	parsed.RawQuery = strings.Join(pairs, "&")

	return parsed.String()
}

// MaskURL is a convenient way of calling MaskQueryValues for the query parameters which are known to carry
// credentials, for example the signature of a SAS token.
func MaskURL(rawURL string) string {
	return MaskQueryValues(rawURL, maskedQueryValues)
}
