package classroom

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Customization is a flat record of feature toggles sent with a
// create/join request. Construct one per request and treat it as
// immutable afterwards; use With to derive a changed copy.
type Customization struct {
	EnableLobby            bool  `json:"enableLobby"`
	EnableChat             bool  `json:"enableChat"`
	EnableControlBar       bool  `json:"enableControlBar"`
	EnableScreenShare      bool  `json:"enableScreenShare"`
	EnableHandRaise        bool  `json:"enableHandRaise"`
	EnableRecording        bool  `json:"enableRecording"`
	EnableIngress          bool  `json:"enableIngress"`
	EnableDomainValidation bool  `json:"enableDomainValidation"`
	Theme                  Theme `json:"theme"`
}

// DefaultCustomization enumerates the default for every toggle
// explicitly. Everything a participant could want is on; lobby and
// domain validation are opt-in gates and default off.
func DefaultCustomization() Customization {
	return Customization{
		EnableLobby:            false,
		EnableChat:             true,
		EnableControlBar:       true,
		EnableScreenShare:      true,
		EnableHandRaise:        true,
		EnableRecording:        true,
		EnableIngress:          true,
		EnableDomainValidation: false,
		Theme:                  ThemeSystem,
	}
}

// With returns a copy with fn applied, leaving the receiver untouched.
func (c Customization) With(fn func(*Customization)) Customization {
	fn(&c)
	return c
}
