// Package geyser implements txstream.Transport on top of a Yellowstone Geyser
// gRPC endpoint.
//
// Each Open dials a dedicated connection and starts a Subscribe call bound to
// the caller's context. Requests carry the access token in the "x-token"
// metadata header.
package geyser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gabapcia/geyserwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/geyserwatch/internal/txstream"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

const (
	defaultPort = "443"

	defaultKeepaliveTime    = 30 * time.Second
	defaultKeepaliveTimeout = 5 * time.Second
	defaultMaxRecvMsgSize   = 1024 * 1024 * 1024
	defaultMaxSendMsgSize   = 32 * 1024 * 1024
)

// tokenAuth attaches the access token to every RPC.
type tokenAuth struct {
	token      string
	requireTLS bool
}

var _ credentials.PerRPCCredentials = tokenAuth{}

func (t tokenAuth) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	return map[string]string{"x-token": t.token}, nil
}

func (t tokenAuth) RequireTransportSecurity() bool {
	return t.requireTLS
}

// client opens Geyser subscriptions. It holds no connection between sessions.
type client struct {
	target   string
	token    string
	insecure bool

	keepaliveTime    time.Duration
	keepaliveTimeout time.Duration
	maxRecvMsgSize   int
	maxSendMsgSize   int

	retry retry.Retry
	dial  func(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error)
}

var _ txstream.Transport = (*client)(nil)

// NormalizeEndpoint turns the configured endpoint into a gRPC target. URL
// schemes are dropped and the default TLS port is added when none is given.
func NormalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", ErrEmptyEndpoint
	}

	if strings.HasPrefix(endpoint, "https://") || strings.HasPrefix(endpoint, "http://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return "", fmt.Errorf("parse endpoint: %w", err)
		}

		if u.Port() != "" {
			return u.Host, nil
		}
		return u.Hostname() + ":" + defaultPort, nil
	}

	if strings.Contains(endpoint, ":") {
		return endpoint, nil
	}
	return endpoint + ":" + defaultPort, nil
}

func (c *client) dialOptions() []grpc.DialOption {
	opts := []grpc.DialOption{
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                c.keepaliveTime,
			Timeout:             c.keepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(c.maxRecvMsgSize),
			grpc.MaxCallSendMsgSize(c.maxSendMsgSize),
		),
	}

	if c.insecure {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	if c.token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(tokenAuth{token: c.token, requireTLS: !c.insecure}))
	}

	return opts
}

// Open dials the endpoint and starts a Subscribe stream bound to ctx.
// When a retry policy is configured, starting the stream is retried with it.
func (c *client) Open(ctx context.Context) (txstream.Stream, error) {
	conn, err := c.dial(c.target, c.dialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.target, err)
	}

	var sub pb.Geyser_SubscribeClient
	subscribe := func() error {
		var err error
		sub, err = pb.NewGeyserClient(conn).Subscribe(ctx)
		return err
	}

	if c.retry != nil {
		err = c.retry.Execute(ctx, subscribe)
	} else {
		err = subscribe()
	}

	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	return newStream(conn, sub), nil
}

type config struct {
	insecure         bool
	keepaliveTime    time.Duration
	keepaliveTimeout time.Duration
	maxRecvMsgSize   int
	maxSendMsgSize   int
	retry            retry.Retry
}

type Option func(*config)

// NewClient validates the endpoint and returns a transport for it. No
// connection is made until Open is called.
func NewClient(endpoint, token string, opts ...Option) (*client, error) {
	target, err := NormalizeEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	cfg := config{
		keepaliveTime:    defaultKeepaliveTime,
		keepaliveTimeout: defaultKeepaliveTimeout,
		maxRecvMsgSize:   defaultMaxRecvMsgSize,
		maxSendMsgSize:   defaultMaxSendMsgSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		target:           target,
		token:            token,
		insecure:         cfg.insecure,
		keepaliveTime:    cfg.keepaliveTime,
		keepaliveTimeout: cfg.keepaliveTimeout,
		maxRecvMsgSize:   cfg.maxRecvMsgSize,
		maxSendMsgSize:   cfg.maxSendMsgSize,
		retry:            cfg.retry,
		dial:             grpc.NewClient,
	}, nil
}

// WithInsecure disables TLS. Meant for local test validators.
func WithInsecure(insecure bool) Option {
	return func(c *config) {
		c.insecure = insecure
	}
}

// WithRetry retries starting the Subscribe stream with r.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

func WithKeepalive(interval, timeout time.Duration) Option {
	return func(c *config) {
		if interval > 0 {
			c.keepaliveTime = interval
		}
		if timeout > 0 {
			c.keepaliveTimeout = timeout
		}
	}
}

func WithMaxMessageSize(recv, send int) Option {
	return func(c *config) {
		if recv > 0 {
			c.maxRecvMsgSize = recv
		}
		if send > 0 {
			c.maxSendMsgSize = send
		}
	}
}
