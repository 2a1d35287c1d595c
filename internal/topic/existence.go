package topic

import (
	"context"

	"github.com/pkg/errors"
)

// verifyTopic checks that a topic id refers to a real, existing topic
// entity before a subscription is opened. When cfg.CheckTopicExists() is
// false the check is skipped entirely and the caller proceeds as though
// the topic exists, so an unknown topic id yields an empty live-only
// subscription that only terminates by time, limit, or cancel.
func verifyTopic(ctx context.Context, lookup EntityLookup, cfg Config, topicID EntityID) error {
	if !cfg.CheckTopicExists() {
		return nil
	}

	entity, err := lookup.Find(ctx, topicID)
	if err != nil {
		return Internal(errors.Wrap(err, "entity lookup failed"), "failed to verify topic")
	}
	if entity == nil {
		return NotFound("no topic found")
	}
	if entity.Type != EntityTypeTopic {
		return InvalidArgument("not a topic")
	}
	return nil
}
