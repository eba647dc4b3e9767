package txstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/gabapcia/geyserwatch/internal/pkg/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/geyserwatch/internal/txstream"

var (
	// ErrSessionClosed is returned by Run once the session has reached StateClosed.
	ErrSessionClosed = errors.New("session closed")

	// ErrSessionRunning is returned by Run while another Run call is in progress.
	ErrSessionRunning = errors.New("session already running")
)

// Transport opens authenticated streams to the remote service.
type Transport interface {
	// Open establishes a new stream bound to ctx. Cancelling ctx must unblock
	// any pending Recv on the returned Stream.
	Open(ctx context.Context) (Stream, error)
}

// Stream is one subscription channel.
type Stream interface {
	// Send writes the subscription request. A session calls it exactly once.
	Send(req SubscriptionRequest) error

	// Recv blocks until the next update arrives. It returns io.EOF when the
	// server ends the stream.
	Recv() (UpdateEnvelope, error)

	// Close releases the stream. It must be safe to call more than once.
	Close() error
}

// Sink receives every decoded transaction, in arrival order.
type Sink interface {
	Publish(ctx context.Context, tx DecodedTransaction) error
}

// Service is a single subscription session.
type Service interface {
	// Run subscribes and consumes the stream until the server ends it, ctx is
	// cancelled or the transport fails. Only a transport failure is returned as
	// an error. The stream is always closed before Run returns.
	Run(ctx context.Context) error

	// State reports the current lifecycle stage.
	State() State
}

type service struct {
	mu        sync.Mutex
	state     State
	isStarted bool

	transport       Transport
	filterAddresses map[string]string
	filterName      string
	commitment      CommitmentLevel
	sinks           []Sink

	tracer       trace.Tracer
	published    metric.Int64Counter
	sinkFailures metric.Int64Counter
}

var _ Service = (*service)(nil)

func (s *service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *service) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

// begin claims the session for a single Run call.
func (s *service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrSessionClosed
	}

	if s.isStarted {
		return ErrSessionRunning
	}

	s.isStarted = true
	return nil
}

func (s *service) Run(ctx context.Context) (err error) {
	if err := s.begin(); err != nil {
		return err
	}

	sessionID := uuid.Must(uuid.NewV7()).String()

	ctx, span := s.tracer.Start(ctx, "txstream.session", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("session.filter", s.filterName),
		attribute.String("session.commitment", s.commitment.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx = logger.Derive(ctx, "session.id", sessionID, "session.filter", s.filterName)

	defer func() {
		s.setState(StateClosed)
		logger.Info(ctx, "session closed")
	}()

	req := BuildSubscriptionRequest(s.filterAddresses, s.commitment)
	req.FilterName = s.filterName

	stream, err := s.transport.Open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.setState(StateDraining)
			return nil
		}

		s.setState(StateFailed)
		return fmt.Errorf("open stream: %w", err)
	}
	defer s.release(ctx, stream)

	if err := stream.Send(req); err != nil {
		if ctx.Err() != nil {
			s.setState(StateDraining)
			return nil
		}

		s.setState(StateFailed)
		return fmt.Errorf("send subscription request: %w", err)
	}

	s.setState(StateStreaming)
	logger.Info(ctx, "subscription started",
		"subscription.accounts", len(req.AccountInclude),
		"subscription.commitment", req.Commitment.String(),
	)

	return s.consume(ctx, stream)
}

// consume is the pull loop. Recv is the only point where it blocks.
func (s *service) consume(ctx context.Context, stream Stream) error {
	for {
		if ctx.Err() != nil {
			s.setState(StateDraining)
			return nil
		}

		update, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				s.setState(StateDraining)
				return nil
			}

			s.setState(StateFailed)
			return fmt.Errorf("receive update: %w", err)
		}

		logger.Debug(ctx, "update received", "update.kind", update.Kind.String())

		if !IsValidUpdate(update, s.filterName) {
			continue
		}

		decoded := DecodeTransaction(*update.Transaction)
		decoded.Filter = s.filterName

		s.publish(ctx, decoded)
	}
}

// publish hands tx to every sink. A failing sink is logged and does not stop
// delivery to the others.
func (s *service) publish(ctx context.Context, tx DecodedTransaction) {
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, tx); err != nil {
			s.sinkFailures.Add(ctx, 1)
			logger.Error(ctx, "failed to publish transaction",
				"transaction.signature", tx.Signature.String(),
				"transaction.slot", tx.Slot,
				"error", err,
			)
		}
	}

	s.published.Add(ctx, 1)
}

func (s *service) release(ctx context.Context, stream Stream) {
	if err := stream.Close(); err != nil {
		logger.Warn(ctx, "failed to close stream", "error", err)
	}
}

type config struct {
	filterName string
	commitment CommitmentLevel
	sinks      []Sink
}

type Option func(*config)

// New builds an idle session that subscribes to transactions touching the
// values of filterAddresses.
func New(transport Transport, filterAddresses map[string]string, opts ...Option) *service {
	cfg := config{
		filterName: DefaultFilterName,
		commitment: CommitmentConfirmed,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	meter := otel.Meter(instrumentationName)
	published := newCounter(meter, "txstream.transactions.published", "Number of decoded transactions handed to the sinks")
	sinkFailures := newCounter(meter, "txstream.sink.failures", "Number of sink deliveries that returned an error")

	return &service{
		state:           StateIdle,
		transport:       transport,
		filterAddresses: maps.Clone(filterAddresses),
		filterName:      cfg.filterName,
		commitment:      cfg.commitment,
		sinks:           cfg.sinks,
		tracer:          otel.Tracer(instrumentationName),
		published:       published,
		sinkFailures:    sinkFailures,
	}
}

// newCounter falls back to a no-op counter when the meter rejects the instrument.
func newCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}
	}
	return counter
}

// WithSink adds sinks that receive every decoded transaction.
func WithSink(sinks ...Sink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, sinks...)
	}
}

// WithFilterName renames the subscription's filter group.
func WithFilterName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.filterName = name
		}
	}
}

// WithCommitment sets the commitment level requested from the server.
// The default is CommitmentConfirmed.
func WithCommitment(level CommitmentLevel) Option {
	return func(c *config) {
		c.commitment = level
	}
}
