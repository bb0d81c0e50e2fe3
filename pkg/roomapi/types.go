package roomapi

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/edulive/edulive-go/pkg/classroom"
)

type CreateRoomRequest struct {
	RoomID        string                   `json:"roomId"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description,omitempty"`
	Participant   classroom.Participant    `json:"participant"`
	Customization *classroom.Customization `json:"customization,omitempty"`
	Settings      *classroom.RoomSettings  `json:"settings,omitempty"`
	Organization  *classroom.Organization  `json:"organization,omitempty"`
	AllowedHosts  []string                 `json:"allowedHosts,omitempty"`
}

func (r *CreateRoomRequest) validate() error {
	if r == nil {
		return errors.New("nil request")
	}
	if r.RoomID == "" {
		return errors.New("room id is empty")
	}
	return r.Participant.Validate()
}

type JoinRoomRequest struct {
	Participant   classroom.Participant    `json:"participant"`
	Customization *classroom.Customization `json:"customization,omitempty"`
}

func (r *JoinRoomRequest) validate() error {
	if r == nil {
		return errors.New("nil request")
	}
	return r.Participant.Validate()
}

// RoomResponse is the canonical create/join result: an auth token plus
// the media server base URL. The embeddable URL form (token carried as
// a query parameter) is derived, never stored, so the two forms cannot
// drift apart.
type RoomResponse struct {
	RoomID        string                   `json:"roomId"`
	Token         string                   `json:"token"`
	ServerURL     string                   `json:"serverUrl"`
	ExpiresAt     *time.Time               `json:"expiresAt,omitempty"`
	Customization *classroom.Customization `json:"customization,omitempty"`
	Room          *classroom.Room          `json:"room,omitempty"`
	Organization  *classroom.Organization  `json:"organization,omitempty"`
}

func (r *RoomResponse) IsExpired() bool {
	return r.ExpiresAt != nil && time.Now().After(*r.ExpiresAt)
}

// EmbedURL composes the URL-with-embedded-token form from the canonical
// token + server URL pair.
func (r *RoomResponse) EmbedURL() string {
	return ComposeEmbedURL(r.ServerURL, r.RoomID, r.Token)
}

const embedTokenParam = "token"

// ComposeEmbedURL builds a full embeddable URL carrying the token as a
// query parameter. Inverse of ParseEmbedURL.
func ComposeEmbedURL(serverURL, roomID, token string) string {
	base := strings.TrimRight(serverURL, "/")
	v := url.Values{}
	v.Set(embedTokenParam, token)
	return base + "/room/" + url.PathEscape(roomID) + "?" + v.Encode()
}

// ParseEmbedURL splits a full embeddable URL back into the canonical
// server URL, room id and token.
func ParseEmbedURL(embedURL string) (serverURL, roomID, token string, err error) {
	u, err := url.Parse(embedURL)
	if err != nil {
		return "", "", "", errors.Wrap(err, "failed to parse embed url")
	}
	token = u.Query().Get(embedTokenParam)
	if token == "" {
		return "", "", "", errors.New("embed url carries no token")
	}
	path := strings.TrimSuffix(u.EscapedPath(), "/")
	i := strings.LastIndex(path, "/room/")
	if i < 0 {
		return "", "", "", errors.New("embed url carries no room path")
	}
	roomID, err = url.PathUnescape(path[i+len("/room/"):])
	if err != nil {
		return "", "", "", errors.Wrap(err, "failed to unescape room id")
	}
	return u.Scheme + "://" + u.Host + path[:i], roomID, token, nil
}

type statusResponse struct {
	Active bool `json:"active"`
}

// errorBody is the API's error payload shape.
type errorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
