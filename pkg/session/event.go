package session

type EventKind string

const (
	EventConnected         EventKind = "connected"
	EventDisconnected      EventKind = "disconnected"
	EventParticipantJoined EventKind = "participantJoined"
	EventParticipantLeft   EventKind = "participantLeft"
	EventClassEnded        EventKind = "classEnded"
	EventParticipantKicked EventKind = "participantKicked"
	EventReconnecting      EventKind = "reconnecting"
	EventReconnected       EventKind = "reconnected"
	EventTrackSubscribed   EventKind = "trackSubscribed"
	EventTrackUnsubscribed EventKind = "trackUnsubscribed"
	EventQualityChanged    EventKind = "qualityChanged"
	EventError             EventKind = "error"
)

// Event is the canonical, immutable session event delivered to host
// callbacks. Zero-valued fields were absent from the source message.
type Event struct {
	Kind            EventKind
	ParticipantID   string
	ParticipantName string
	Message         string
	Reason          string

	// Cause carries the underlying failure for error events, when known.
	Cause error
}
