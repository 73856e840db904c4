// Package live implements the lookup backend against a real investigation
// gateway: one GET per call, bounded timeout, envelope unwrap.
package live

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/lookup"
)

// Gateway is a lookup.Backend over HTTP. It holds no per-call state and is
// safe for concurrent use.
type Gateway struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// New builds a gateway. The base URL is trimmed of trailing slashes so paths
// can be joined verbatim.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Fetch issues exactly one GET and interprets the response. No retries, no
// caching.
func (g *Gateway) Fetch(ctx context.Context, path string, params map[string]string) (interface{}, error) {
	endpoint := g.baseURL + path
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &lookup.TransportError{Path: path, Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &lookup.TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &lookup.TransportError{
			Path: path,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &lookup.TransportError{Path: path, Err: err}
	}

	env, err := lookup.DecodeEnvelope(body)
	if err != nil {
		return nil, &lookup.MalformedResponseError{Path: path, Err: err}
	}

	if !env.Tagged {
		g.log.Warn().Str("path", path).Msg("backend returned non-envelope body, passing through")
		return env.Raw, nil
	}
	if !env.Success() {
		return nil, &lookup.BusinessError{Path: path, Code: env.Code, Msg: env.Msg}
	}
	return env.Data, nil
}
