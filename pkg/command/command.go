package command

import "encoding/json"

type Type string

const (
	TypeForceLeave             Type = "forceLeave"
	TypeDisconnect             Type = "disconnect"
	TypeSetQuality             Type = "setQuality"
	TypeEnableAudio            Type = "enableAudio"
	TypeSetAudioMuted          Type = "setAudioMuted"
	TypeSetVideoEnabled        Type = "setVideoEnabled"
	TypeSetFullscreen          Type = "setFullscreen"
	TypeSetChatVisible         Type = "setChatVisible"
	TypeSetParticipantsVisible Type = "setParticipantsVisible"
	TypeSetHandRaised          Type = "setHandRaised"
	TypeSendChatMessage        Type = "sendChatMessage"
	TypeMuteParticipant        Type = "muteParticipant"
	TypeKickParticipant        Type = "kickParticipant"
	TypeEndClass               Type = "endClass"
)

// Quality is a simulcast tier request. Auto defers tier selection to
// the media engine's network-adaptive logic; the dispatcher never
// second-guesses achievability.
type Quality string

const (
	QualityAuto   Quality = "auto"
	QualityLowest Quality = "lowest"
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Command is the outbound control envelope posted to the remote
// surface.
type Command struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type forceLeaveData struct {
	Reason string `json:"reason,omitempty"`
}

type qualityData struct {
	Quality Quality `json:"quality"`
}

type toggleData struct {
	Enabled bool `json:"enabled"`
}

type chatMessageData struct {
	Message string `json:"message"`
}

type participantData struct {
	ParticipantID string `json:"participantId"`
	Reason        string `json:"reason,omitempty"`
}

func mustData(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		// all payload types above marshal unconditionally
		panic(err)
	}
	return data
}

func ForceLeave(reason string) Command {
	return Command{Type: TypeForceLeave, Data: mustData(forceLeaveData{Reason: reason})}
}

func Disconnect() Command {
	return Command{Type: TypeDisconnect}
}

func SetQuality(q Quality) Command {
	return Command{Type: TypeSetQuality, Data: mustData(qualityData{Quality: q})}
}

func EnableAudio() Command {
	return Command{Type: TypeEnableAudio}
}

func SetAudioMuted(muted bool) Command {
	return Command{Type: TypeSetAudioMuted, Data: mustData(toggleData{Enabled: muted})}
}

func SetVideoEnabled(enabled bool) Command {
	return Command{Type: TypeSetVideoEnabled, Data: mustData(toggleData{Enabled: enabled})}
}

func SetFullscreen(enabled bool) Command {
	return Command{Type: TypeSetFullscreen, Data: mustData(toggleData{Enabled: enabled})}
}

func SetChatVisible(visible bool) Command {
	return Command{Type: TypeSetChatVisible, Data: mustData(toggleData{Enabled: visible})}
}

func SetParticipantsVisible(visible bool) Command {
	return Command{Type: TypeSetParticipantsVisible, Data: mustData(toggleData{Enabled: visible})}
}

func SetHandRaised(raised bool) Command {
	return Command{Type: TypeSetHandRaised, Data: mustData(toggleData{Enabled: raised})}
}

func SendChatMessage(message string) Command {
	return Command{Type: TypeSendChatMessage, Data: mustData(chatMessageData{Message: message})}
}

func MuteParticipant(participantID string) Command {
	return Command{Type: TypeMuteParticipant, Data: mustData(participantData{ParticipantID: participantID})}
}

func KickParticipant(participantID, reason string) Command {
	return Command{Type: TypeKickParticipant, Data: mustData(participantData{ParticipantID: participantID, Reason: reason})}
}

func EndClass() Command {
	return Command{Type: TypeEndClass}
}
