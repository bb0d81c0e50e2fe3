package classroom

import (
	"github.com/pkg/errors"
)

// Participant identifies one user attached to a room. The ID is expected
// to be stable across sessions of the same user.
type Participant struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	Role      Role              `json:"role"`
	AvatarURL string            `json:"avatarUrl,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *Participant) Validate() error {
	if p.ID == "" {
		return errors.New("participant id is empty")
	}
	if !p.Role.Valid() {
		return errors.Errorf("unknown role: %q", p.Role)
	}
	return nil
}
