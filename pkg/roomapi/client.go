package roomapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
	DefaultTimeout    = 30 * time.Second

	headerOrganizationID = "X-Organization-ID"
	headerSDKVersion     = "X-SDK-Version"
	headerSDKPlatform    = "X-SDK-Platform"
	headerRequestID      = "X-Request-ID"

	maxErrorBodySize = 64 << 10
)

type ClientConfig struct {
	BaseURL string
	OrgID   string

	// MaxRetries bounds the attempts per call; RetryDelay grows linearly
	// with the attempt number (delay, 2*delay, ...).
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration

	HTTPClient *http.Client

	// Optional diagnostic tags sent with every request.
	SDKVersion  string
	SDKPlatform string

	// Logger receives debug traces of method, URL, attempt and status.
	// Bodies are never logged; they may carry tokens.
	Logger zerolog.Logger
}

// Client talks to the room create/join API. Transient failures
// (transport errors and 5xx responses) are retried with a linear
// backoff; everything else surfaces immediately as an *Error.
type Client struct {
	baseURL     string
	orgID       string
	maxRetries  int
	retryDelay  time.Duration
	sdkVersion  string
	sdkPlatform string
	hc          *http.Client
	logger      zerolog.Logger
}

func NewClient(conf *ClientConfig) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(conf.BaseURL, "/"),
		orgID:       conf.OrgID,
		maxRetries:  conf.MaxRetries,
		retryDelay:  conf.RetryDelay,
		sdkVersion:  conf.SDKVersion,
		sdkPlatform: conf.SDKPlatform,
		hc:          conf.HTTPClient,
		logger:      conf.Logger,
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryDelay <= 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.hc == nil {
		timeout := conf.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.hc = &http.Client{Timeout: timeout}
	}
	return c
}

func (c *Client) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*RoomResponse, error) {
	if err := req.validate(); err != nil {
		return nil, &Error{Kind: ErrorKindValidation, Message: err.Error(), cause: err}
	}
	var resp RoomResponse
	if err := c.do(ctx, http.MethodPost, "/v1/room/create", req.RoomID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) JoinRoom(ctx context.Context, roomID string, req *JoinRoomRequest) (*RoomResponse, error) {
	if roomID == "" {
		return nil, &Error{Kind: ErrorKindValidation, Message: "room id is empty"}
	}
	if err := req.validate(); err != nil {
		return nil, &Error{Kind: ErrorKindValidation, Message: err.Error(), cause: err}
	}
	var resp RoomResponse
	path := "/v1/room/" + url.PathEscape(roomID) + "/join"
	if err := c.do(ctx, http.MethodPost, path, roomID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IsRoomActive reports whether a room exists and is live. A
// room-not-found response is a successful false, not an error.
func (c *Client) IsRoomActive(ctx context.Context, roomID string) (bool, error) {
	if roomID == "" {
		return false, &Error{Kind: ErrorKindValidation, Message: "room id is empty"}
	}
	var resp statusResponse
	path := "/v1/room/" + url.PathEscape(roomID) + "/status"
	if err := c.do(ctx, http.MethodGet, path, roomID, nil, &resp); err != nil {
		if IsRoomNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return resp.Active, nil
}

func (c *Client) do(ctx context.Context, method, path, roomID string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return &Error{Kind: ErrorKindValidation, Message: "failed to encode request body", cause: err}
		}
	}
	url_ := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.retryDelay*time.Duration(attempt-1)); err != nil {
				return lastErr
			}
		}
		err := c.doOnce(ctx, method, url_, roomID, body, out, attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, url_, roomID string, body []byte, out interface{}, attempt int) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url_, reader)
	if err != nil {
		return &Error{Kind: ErrorKindUnknown, Message: "failed to build request", cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerOrganizationID, c.orgID)
	if c.sdkVersion != "" {
		req.Header.Set(headerSDKVersion, c.sdkVersion)
	}
	if c.sdkPlatform != "" {
		req.Header.Set(headerSDKPlatform, c.sdkPlatform)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		nerr := classifyTransportError(err)
		c.logger.Debug().Str("method", method).Str("url", url_).Int("attempt", attempt).
			Err(nerr).Msg("room api request failed")
		return nerr
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("method", method).Str("url", url_).Int("attempt", attempt).
		Int("status", resp.StatusCode).Msg("room api request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: ErrorKindUnknown, Message: "failed to decode response body", cause: err}
		}
		return nil
	}
	return classifyStatus(resp, roomID)
}

func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newNetworkError(ReasonTimeout, true, err)
	}
	if errors.Is(err, context.Canceled) {
		return newNetworkError(ReasonNetworkOther, false, err)
	}
	type timeouter interface{ Timeout() bool }
	var te timeouter
	if errors.As(err, &te) && te.Timeout() {
		return newNetworkError(ReasonTimeout, true, err)
	}
	return newNetworkError(ReasonNoConnection, true, err)
}

func classifyStatus(resp *http.Response, roomID string) *Error {
	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	_ = json.Unmarshal(raw, &eb)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: ErrorKindAuth, Reason: ReasonInvalidCredentials, Message: eb.Message}
	case resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: ErrorKindAuth, Reason: ReasonUnauthorized, Message: eb.Message}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: ErrorKindRoomNotFound, Message: eb.Message, RoomID: roomID}
	case resp.StatusCode == http.StatusTooManyRequests:
		return newRateLimitedError(eb.Message, parseRetryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return &Error{Kind: ErrorKindValidation, Message: eb.Message, Fields: eb.Errors}
	case resp.StatusCode >= 500:
		return &Error{
			Kind:          ErrorKindServer,
			Message:       eb.Message,
			Status:        resp.StatusCode,
			CorrelationID: resp.Header.Get(headerRequestID),
			Retryable:     true,
		}
	default:
		return &Error{
			Kind:      ErrorKindNetwork,
			Reason:    ReasonNetworkOther,
			Message:   eb.Message,
			Status:    resp.StatusCode,
			Retryable: resp.StatusCode >= 500,
		}
	}
}

func parseRetryAfter(v string) int {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return secs
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return int(d / time.Second)
		}
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
