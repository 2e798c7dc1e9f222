package k8swatch

import (
	"context"
	"io"
	"net/http"
)

// HTTPDoer is the narrow capability the watch core requires of an external
// HTTP client: send a request, get a response back. Everything below this
// interface — TLS, bearer-token auth, connection pooling, base-URL
// resolution — is left to whatever concrete client the caller supplies;
// NewHTTPClient in client.go is the concrete adapter this repo provides,
// built from client-go's transport layer.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient is the HTTP adapter the watch core calls through. Origin is
// the scheme+host the watch path is resolved against; Doer sends the
// request.
type HTTPClient struct {
	Origin string
	Doer   HTTPDoer
}

// buildWatchCall assembles the GET request for the current session state:
// the watch URL plus the headers a watch handshake requires. Auth is left
// to the Doer's own RoundTripper.
//
// This has to be a free function rather than a method: Go methods can't
// carry their own type parameters, and the session state is generic over
// the watched resource type.
func buildWatchCall[T any](c *HTTPClient, ctx context.Context, s *WatcherState[T]) (*http.Request, error) {
	url := c.Origin + buildWatchURL(s.baseURL,
		optionalParam("resourceVersion", s.resourceVersion),
		optionalParam("fieldSelector", s.fieldSelector),
		optionalParam("labelSelector", s.labelSelector),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Connection", "keep-alive")
	return req, nil
}

// executeCall sends the request and classifies the result. A successful
// 2xx response yields a live lineReader; anything else is an *ApiError, and
// a transport-level failure is returned unwrapped.
func (c *HTTPClient) executeCall(req *http.Request) (*lineReader, error) {
	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode/100 == 2 {
		return newLineReader(resp.Body), nil
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	apiErr := &ApiError{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Message: http.StatusText(resp.StatusCode),
	}
	if readErr == nil && len(body) > 0 {
		apiErr.HasBody = true
		apiErr.ResponseBody = string(body)
	}
	return nil, apiErr
}
