// Package webhook delivers decoded transactions to an HTTP endpoint as JSON.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	transporthttp "github.com/gabapcia/geyserwatch/internal/pkg/transport/http"
	"github.com/gabapcia/geyserwatch/internal/txstream"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// RequestIDHeader carries a unique id per delivery. Retries of the same
// delivery reuse it so receivers can drop duplicates.
const RequestIDHeader = "X-Request-Id"

var (
	// ErrInvalidURL is returned by New when the target is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid webhook url")

	// ErrUnexpectedStatus is returned when the receiver answers outside the 2xx range.
	ErrUnexpectedStatus = errors.New("unexpected webhook response status")
)

type notifier struct {
	target     string
	httpClient *retryablehttp.Client
}

var _ txstream.Sink = (*notifier)(nil)

// Publish POSTs the transaction to the configured URL.
func (n *notifier) Publish(ctx context.Context, tx txstream.DecodedTransaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.Signature, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.target, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	res, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	return nil
}

// New returns a sink posting to target. Options tune the underlying
// retrying HTTP client.
func New(target string, opts ...transporthttp.Option) (*notifier, error) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, target)
	}

	return &notifier{
		target:     u.String(),
		httpClient: transporthttp.NewClient(opts...),
	}, nil
}
