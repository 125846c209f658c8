package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/core/domain"
)

// LogSink writes activity events to the structured log. It is the sink used
// when no MongoDB is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(_ context.Context, event domain.ActivityEvent) error {
	s.log.Info().
		Str("kind", string(event.Kind)).
		Str("actor_id", event.ActorID).
		Str("job_id", event.JobID).
		Str("bid_id", event.BidID).
		Time("occurred_at", event.Timestamp).
		Msg("activity")
	return nil
}
