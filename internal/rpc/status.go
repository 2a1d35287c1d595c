// Package rpc adapts the topic.Engine onto the ConsensusService gRPC
// surface: decoding the wire query, translating taxonomy errors to
// gRPC status codes, and wrapping grpc.ServerStream as a topic.Sink.
package rpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// grpcStatus maps the engine's terminal Code onto the standard gRPC status
// codes; any code this package does not recognize becomes Internal rather
// than silently reporting OK.
func grpcStatus(err error) error {
	if err == nil {
		return nil
	}

	code := topic.CodeOf(err)
	var c codes.Code
	switch code {
	case topic.CodeInvalidArgument:
		c = codes.InvalidArgument
	case topic.CodeNotFound:
		c = codes.NotFound
	case topic.CodeInternal:
		c = codes.Internal
	case topic.CodeUnavailable:
		c = codes.Unavailable
	case topic.CodeResourceExhausted:
		c = codes.ResourceExhausted
	case topic.CodeCancelled:
		c = codes.Canceled
	default:
		c = codes.Internal
	}

	return status.Error(c, err.Error())
}
