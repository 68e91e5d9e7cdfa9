package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent identifies the vault client in server access logs.
const UserAgent = "secure-vault-client"

// HTTPClient embeds *resty.Client preconfigured for one server.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client whose requests are resolved against baseURL,
// expect JSON back and give up after timeout. A zero timeout means no limit.
//
// Every call returns an independent client with its own connection pool.
//
//	client := utils.NewHTTPClient("http://localhost:8080", 10*time.Second)
//	resp, err := client.R().SetResult(&items).Get("/api/vault")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent)

	return &HTTPClient{Client: client}
}
