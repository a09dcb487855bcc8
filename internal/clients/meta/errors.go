package meta

// ProviderError means the Graph API understood the request but reported a
// semantic failure: bad token, insufficient permission, invalid account id,
// rate limiting. The provider's message is carried verbatim and shown to the
// user as-is. Not retried.
type ProviderError struct {
	Message string
	Type    string
	Code    int
}

func (e *ProviderError) Error() string {
	return e.Message
}

// TransportError means the request never completed meaningfully: network
// failure, timeout, or a body that is not valid JSON. Not retried.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
