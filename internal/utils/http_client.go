package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every outbound request.
const UserAgent = "go-uid-panel"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client that never retries on its
// own: callers of outbound APIs decide whether a failed call is repeated.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
