package session

import (
	"encoding/json"
	"fmt"
)

// RawMessage is the loosely-typed envelope the transport surfaces
// deliver. Field names for the same event drift between surfaces; the
// alias table below folds them into one vocabulary.
type RawMessage struct {
	Type            string `json:"type"`
	ParticipantID   string `json:"participantId,omitempty"`
	ParticipantName string `json:"participantName,omitempty"`
	Message         string `json:"message,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

var eventAliases = map[string]EventKind{
	"kicked":                   EventParticipantKicked,
	"connectionQualityChanged": EventQualityChanged,
	"ended":                    EventClassEnded,
}

var eventKinds = map[string]EventKind{
	string(EventConnected):         EventConnected,
	string(EventDisconnected):      EventDisconnected,
	string(EventParticipantJoined): EventParticipantJoined,
	string(EventParticipantLeft):   EventParticipantLeft,
	string(EventClassEnded):        EventClassEnded,
	string(EventParticipantKicked): EventParticipantKicked,
	string(EventReconnecting):      EventReconnecting,
	string(EventReconnected):       EventReconnected,
	string(EventTrackSubscribed):   EventTrackSubscribed,
	string(EventTrackUnsubscribed): EventTrackUnsubscribed,
	string(EventQualityChanged):    EventQualityChanged,
	string(EventError):             EventError,
}

// MapMessage normalizes one raw message into a canonical Event. It is
// pure and total: an unrecognized type degrades to an error-kind Event
// so the host is never blind to unexpected traffic.
func MapMessage(msg RawMessage) Event {
	kind, ok := eventKinds[msg.Type]
	if !ok {
		kind, ok = eventAliases[msg.Type]
	}
	if !ok {
		return Event{
			Kind:    EventError,
			Message: fmt.Sprintf("unknown message type: %q", msg.Type),
			Reason:  "unknownMessageType",
		}
	}
	return Event{
		Kind:            kind,
		ParticipantID:   msg.ParticipantID,
		ParticipantName: msg.ParticipantName,
		Message:         msg.Message,
		Reason:          msg.Reason,
	}
}

// MapRaw decodes a JSON envelope and maps it. Garbled input degrades to
// an error-kind Event; a single bad message never takes the session down.
func MapRaw(data []byte) Event {
	var msg RawMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Event{
			Kind:    EventError,
			Message: "failed to decode message",
			Reason:  "malformedMessage",
			Cause:   err,
		}
	}
	return MapMessage(msg)
}
