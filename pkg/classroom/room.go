package classroom

// RoomSettings carries per-room limits and behavior flags echoed back
// by the room API.
type RoomSettings struct {
	MaxParticipants int  `json:"maxParticipants,omitempty"`
	AutoEndMinutes  int  `json:"autoEndMinutes,omitempty"`
	Record          bool `json:"record,omitempty"`
	MuteOnJoin      bool `json:"muteOnJoin,omitempty"`
}

// Organization is optional branding attached to a room.
type Organization struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// Room is the API's view of a classroom session.
type Room struct {
	ID           string        `json:"id"`
	Title        string        `json:"title,omitempty"`
	Description  string        `json:"description,omitempty"`
	Settings     *RoomSettings `json:"settings,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
}
