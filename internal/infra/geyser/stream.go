package geyser

import (
	"errors"
	"io"
	"sync"

	"github.com/gabapcia/geyserwatch/internal/txstream"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrEmptyEndpoint is returned by NewClient when no endpoint is configured.
	ErrEmptyEndpoint = errors.New("geyser endpoint is empty")

	// ErrStreamClosed is returned by Send and Recv after Close.
	ErrStreamClosed = errors.New("geyser stream closed")
)

// subscription is the part of the generated Subscribe client the stream uses.
type subscription interface {
	Send(*pb.SubscribeRequest) error
	Recv() (*pb.SubscribeUpdate, error)
	CloseSend() error
}

// stream adapts a Subscribe call to txstream.Stream and owns the connection
// it runs on.
type stream struct {
	conn io.Closer
	sub  subscription

	mu       sync.Mutex
	closed   bool
	closeErr error
}

var _ txstream.Stream = (*stream)(nil)

func newStream(conn io.Closer, sub subscription) *stream {
	return &stream{conn: conn, sub: sub}
}

func (s *stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func (s *stream) Send(req txstream.SubscriptionRequest) error {
	if s.isClosed() {
		return ErrStreamClosed
	}
	return s.sub.Send(toSubscribeRequest(req))
}

func (s *stream) Recv() (txstream.UpdateEnvelope, error) {
	if s.isClosed() {
		return txstream.UpdateEnvelope{}, ErrStreamClosed
	}

	update, err := s.sub.Recv()
	if err != nil {
		return txstream.UpdateEnvelope{}, err
	}
	return toUpdateEnvelope(update), nil
}

// Close half-closes the stream and releases the connection. Later calls
// return the result of the first one.
func (s *stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.closeErr
	}

	s.closed = true
	s.closeErr = errors.Join(s.sub.CloseSend(), s.conn.Close())
	return s.closeErr
}

// IsRetryable reports whether a failed Subscribe is worth another attempt.
// Only transient server and network conditions qualify; auth and argument
// errors never do.
func IsRetryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted, codes.Internal, codes.Unknown, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}
