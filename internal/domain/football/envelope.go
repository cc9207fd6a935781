package football

import (
	sonic "github.com/bytedance/sonic"
)

const (
	fieldResponse = "response"
	fieldError    = "error"
)

// Envelope is the {"response": [...]} wrapper every operation returns.
// Response is never nil once built through NewEnvelope or Empty. Extra holds
// the other top-level fields of the upstream body (get, parameters, paging...).
type Envelope struct {
	Response []any
	Error    string
	Extra    map[string]any
}

func Empty() Envelope {
	return Envelope{Response: []any{}}
}

// Fallback is what callers see when the upstream could not be reached.
func Fallback() Envelope {
	return Empty()
}

func NewEnvelope(items []any) Envelope {
	if items == nil {
		items = []any{}
	}
	return Envelope{Response: items}
}

// WithError returns an empty envelope carrying an advisory message.
func WithError(msg string) Envelope {
	env := Empty()
	env.Error = msg
	return env
}

// FromBody builds an envelope from a decoded upstream body. ok is false when
// the body has no response field at all. An object response is wrapped into
// a one element list; null becomes an empty list.
func FromBody(body map[string]any) (Envelope, bool) {
	raw, ok := body[fieldResponse]
	if !ok {
		return Empty(), false
	}

	env := Envelope{Response: normalizeResponse(raw)}
	for k, v := range body {
		if k == fieldResponse {
			continue
		}
		if env.Extra == nil {
			env.Extra = make(map[string]any, len(body)-1)
		}
		env.Extra[k] = v
	}

	return env, true
}

func (e Envelope) Len() int {
	return len(e.Response)
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		out[k] = v
	}
	items := e.Response
	if items == nil {
		items = []any{}
	}
	out[fieldResponse] = items
	if e.Error != "" {
		out[fieldError] = e.Error
	}

	return sonic.Marshal(out)
}

func normalizeResponse(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	default:
		return []any{v}
	}
}
