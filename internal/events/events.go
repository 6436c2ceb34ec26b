package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"brawl-missions/internal/domain/crew"
	"brawl-missions/internal/domain/mission"
	"brawl-missions/pkg/logger"
)

const (
	SubjectMissionStatusChanged = "missions.status_changed"
	SubjectCrewJoined           = "missions.crew_joined"
	SubjectCrewLeft             = "missions.crew_left"
)

var publishedMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "brawl_missions",
	Subsystem: "events",
	Name:      "published_total",
	Help:      "Lifecycle events handed to the bus, by subject and outcome.",
}, []string{"subject", "outcome"})

type StatusChangedEvent struct {
	MissionID int64     `json:"mission_id"`
	ChiefID   int64     `json:"chief_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	At        time.Time `json:"at"`
}

type CrewEvent struct {
	MissionID int64     `json:"mission_id"`
	BrawlerID int64     `json:"brawler_id"`
	At        time.Time `json:"at"`
}

type sink interface {
	Publish(subject string, data []byte) error
}

// Publisher fans lifecycle notifications out to a message bus. Failures are
// logged and counted; they never fail the originating request.
type Publisher struct {
	sink sink
	log  logger.Logger
}

func newPublisher(s sink, log logger.Logger) *Publisher {
	return &Publisher{sink: s, log: log.With("component", "events")}
}

func (p *Publisher) MissionStatusChanged(_ context.Context, change mission.StatusChange) {
	p.publish(SubjectMissionStatusChanged, StatusChangedEvent{
		MissionID: change.MissionID,
		ChiefID:   change.ChiefID,
		From:      change.From.String(),
		To:        change.To.String(),
		At:        change.At,
	})
}

func (p *Publisher) CrewJoined(_ context.Context, event crew.MembershipEvent) {
	p.publish(SubjectCrewJoined, CrewEvent{MissionID: event.MissionID, BrawlerID: event.BrawlerID, At: event.At})
}

func (p *Publisher) CrewLeft(_ context.Context, event crew.MembershipEvent) {
	p.publish(SubjectCrewLeft, CrewEvent{MissionID: event.MissionID, BrawlerID: event.BrawlerID, At: event.At})
}

func (p *Publisher) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		publishedMetric.WithLabelValues(subject, "encode_error").Inc()
		p.log.InternalError("events: encode payload", err, "subject", subject)
		return
	}

	if err := p.sink.Publish(subject, data); err != nil {
		publishedMetric.WithLabelValues(subject, "error").Inc()
		p.log.InternalError("events: publish failed", err, "subject", subject)
		return
	}

	publishedMetric.WithLabelValues(subject, "ok").Inc()
	p.log.Debug("events: published", "subject", subject)
}

type discardSink struct{}

func (discardSink) Publish(string, []byte) error { return nil }

// NewNoop returns a publisher that drops every event.
func NewNoop(log logger.Logger) *Publisher {
	return newPublisher(discardSink{}, log)
}
