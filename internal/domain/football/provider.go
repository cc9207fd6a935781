package football

import "context"

// Query holds the parameters of one upstream call.
type Query map[string]string

// Provider performs one GET against the upstream football API.
type Provider interface {
	Get(ctx context.Context, path string, query Query) (Envelope, error)
}
