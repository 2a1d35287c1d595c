package rpc

import (
	"github.com/google/uuid"

	"github.com/hashgraph/hedera-mirror-topicsub/api/topicsubpb"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/logging"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// ConsensusServer implements topicsubpb.ConsensusServiceServer over a
// topic.Engine, the only collaborator it needs.
type ConsensusServer struct {
	topicsubpb.UnimplementedConsensusServiceServer

	engine *topic.Engine
}

// NewConsensusServer wires a ready-to-serve ConsensusServer around engine.
func NewConsensusServer(engine *topic.Engine) *ConsensusServer {
	return &ConsensusServer{engine: engine}
}

// SubscribeTopic decodes req into a topic.Filter, runs it against the
// engine, and translates the terminal error (if any) into a gRPC status.
func (s *ConsensusServer) SubscribeTopic(req *topicsubpb.ConsensusTopicQuery, stream topicsubpb.ConsensusService_SubscribeTopicServer) error {
	filter := topic.Filter{
		TopicID:      topic.EntityID(req.GetTopicId()),
		StartTime:    req.GetStartTime(),
		Limit:        req.GetLimit(),
		SubscriberID: uuid.New(),
	}
	if req.GetHasEndTime() {
		filter.EndTime = topic.NewEndTime(req.GetEndTime())
	}

	sink := &streamSink{stream: stream}

	err := s.engine.Subscribe(stream.Context(), filter, sink)
	if err != nil {
		logging.Warnw("topic subscription terminated with error",
			"topicId", filter.TopicID, "subscriberId", filter.SubscriberID, "err", err)
	}
	return grpcStatus(err)
}

// streamSink adapts the generated server stream to topic.Sink.
type streamSink struct {
	stream topicsubpb.ConsensusService_SubscribeTopicServer
}

func (s *streamSink) Send(msg topic.Message) error {
	return s.stream.Send(&topicsubpb.ConsensusTopicResponse{
		TopicId:            int64(msg.TopicID),
		SequenceNumber:     msg.SequenceNumber,
		ConsensusTimestamp: msg.ConsensusTimestamp,
		Message:            msg.Message,
		RunningHash:        msg.RunningHash,
		RunningHashVersion: msg.RunningHashVersion,
	})
}
