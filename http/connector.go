package http

import (
	"strings"

	"github.com/fwojciec/papermill"
)

// ConnectorOption configures a source connector.
type ConnectorOption func(*connectorOptions)

type connectorOptions struct {
	endpoint string
	pageSize int
	apiKey   string
}

// WithEndpoint overrides the source's base endpoint.
func WithEndpoint(u string) ConnectorOption {
	return func(o *connectorOptions) {
		o.endpoint = strings.TrimRight(u, "/")
	}
}

// WithPageSize sets the number of results requested per page.
// Defaults to papermill.DefaultPageSize.
func WithPageSize(n int) ConnectorOption {
	return func(o *connectorOptions) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithAPIKey sets the credential sent to the source.
func WithAPIKey(key string) ConnectorOption {
	return func(o *connectorOptions) {
		o.apiKey = key
	}
}

func newConnectorOptions(endpoint string, opts []ConnectorOption) connectorOptions {
	o := connectorOptions{
		endpoint: endpoint,
		pageSize: papermill.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkPage(page int) error {
	if page < 1 {
		return papermill.Errorf(papermill.EINVALID, "page must be positive, got %d", page)
	}
	return nil
}
