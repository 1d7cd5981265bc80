package papermill

import "context"

// Content types used when fetching.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
)

// FetchRequest describes a single GET.
type FetchRequest struct {
	URL string

	// Accept, if set, must be contained in the response Content-Type.
	Accept string

	// Headers are added to the request, e.g. Authorization.
	Headers map[string]string
}

// Payload holds the raw bytes of a fetched resource.
type Payload struct {
	URL         string
	Bytes       []byte
	ContentType string
	Origin      *CandidateDocument
}

// Fetcher retrieves raw resources over the network.
type Fetcher interface {
	// Fetch performs a single GET. Non-2xx responses return EHTTPSTATUS,
	// network failures ETRANSPORT, content type mismatches ECONTENTTYPE.
	Fetch(ctx context.Context, req FetchRequest) (*Payload, error)
}
