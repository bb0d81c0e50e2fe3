package roomapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/edulive/edulive-go/pkg/classroom"
	"github.com/edulive/edulive-go/pkg/roomapi"
)

func newTestClient(baseURL string) *roomapi.Client {
	return roomapi.NewClient(&roomapi.ClientConfig{
		BaseURL:    baseURL,
		OrgID:      "org-test",
		RetryDelay: 10 * time.Millisecond,
	})
}

func validCreateRequest() *roomapi.CreateRoomRequest {
	return &roomapi.CreateRoomRequest{
		RoomID: "math-101",
		Title:  "Algebra",
		Participant: classroom.Participant{
			ID:   "user-1",
			Name: "Alice",
			Role: classroom.RoleTeacher,
		},
	}
}

func TestCreateRoom(t *testing.T) {
	var gotOrg, gotContentType string
	r := chi.NewRouter()
	r.Post("/v1/room/create", func(w http.ResponseWriter, req *http.Request) {
		gotOrg = req.Header.Get("X-Organization-ID")
		gotContentType = req.Header.Get("Content-Type")
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"roomId":"math-101","token":"tok123","serverUrl":"https://media.example.com"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	client := newTestClient(ts.URL)
	resp, err := client.CreateRoom(context.Background(), validCreateRequest())
	assert.NoError(t, err)
	assert.Equal(t, "math-101", resp.RoomID)
	assert.Equal(t, "tok123", resp.Token)
	assert.Equal(t, "https://media.example.com", resp.ServerURL)
	assert.Equal(t, "org-test", gotOrg)
	assert.Equal(t, "application/json", gotContentType)
	assert.False(t, resp.IsExpired())
}

func TestCreateRoomValidatesBeforeNetwork(t *testing.T) {
	var attempts int32
	r := chi.NewRouter()
	r.Post("/v1/room/create", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&attempts, 1)
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	client := newTestClient(ts.URL)
	req := validCreateRequest()
	req.Participant.ID = ""
	_, err := client.CreateRoom(context.Background(), req)
	assert.Error(t, err)
	e, ok := roomapi.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, roomapi.ErrorKindValidation, e.Kind)
	assert.Equal(t, int32(0), atomic.LoadInt32(&attempts))
}

func TestRetriesServerErrors(t *testing.T) {
	var attempts int32
	r := chi.NewRouter()
	r.Post("/v1/room/create", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("X-Request-ID", "req-42")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	client := newTestClient(ts.URL)
	start := time.Now()
	_, err := client.CreateRoom(context.Background(), validCreateRequest())
	elapsed := time.Since(start)

	assert.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	// linear backoff: delay*1 + delay*2 between the three attempts
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)

	e, ok := roomapi.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, roomapi.ErrorKindServer, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, "req-42", e.CorrelationID)
	assert.True(t, e.Retryable)
}

func TestRecoversAfterTransientServerError(t *testing.T) {
	var attempts int32
	r := chi.NewRouter()
	r.Post("/v1/room/create", func(w http.ResponseWriter, req *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"roomId":"math-101","token":"tok123","serverUrl":"https://media.example.com"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	client := newTestClient(ts.URL)
	resp, err := client.CreateRoom(context.Background(), validCreateRequest())
	assert.NoError(t, err)
	assert.Equal(t, "tok123", resp.Token)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	cases := []struct {
		status int
		kind   roomapi.ErrorKind
		reason roomapi.Reason
	}{
		{http.StatusBadRequest, roomapi.ErrorKindValidation, ""},
		{http.StatusUnauthorized, roomapi.ErrorKindAuth, roomapi.ReasonInvalidCredentials},
		{http.StatusForbidden, roomapi.ErrorKindAuth, roomapi.ReasonUnauthorized},
		{http.StatusNotFound, roomapi.ErrorKindRoomNotFound, ""},
		{http.StatusUnprocessableEntity, roomapi.ErrorKindValidation, ""},
	}
	for _, tc := range cases {
		var attempts int32
		r := chi.NewRouter()
		r.Post("/v1/room/{roomID}/join", func(w http.ResponseWriter, req *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"message":"nope","errors":{"name":"required"}}`))
		})
		ts := httptest.NewServer(r)

		client := newTestClient(ts.URL)
		_, err := client.JoinRoom(context.Background(), "math-101", &roomapi.JoinRoomRequest{
			Participant: classroom.Participant{ID: "user-1", Role: classroom.RoleStudent},
		})
		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "status %d", tc.status)

		e, ok := roomapi.AsError(err)
		assert.True(t, ok)
		assert.Equal(t, tc.kind, e.Kind, "status %d", tc.status)
		assert.Equal(t, tc.reason, e.Reason, "status %d", tc.status)
		assert.False(t, e.Retryable)
		if tc.kind == roomapi.ErrorKindRoomNotFound {
			assert.Equal(t, "math-101", e.RoomID)
		}
		if tc.kind == roomapi.ErrorKindValidation {
			assert.Equal(t, "required", e.Fields["name"])
		}
		ts.Close()
	}
}

func TestRateLimited(t *testing.T) {
	var attempts int32
	r := chi.NewRouter()
	r.Post("/v1/room/create", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"slow down"}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.CreateRoom(context.Background(), validCreateRequest())
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))

	e, ok := roomapi.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, roomapi.ErrorKindRateLimited, e.Kind)
	assert.Equal(t, 30, e.RetryAfterSeconds)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), e.ResetAt, 2*time.Second)
	assert.False(t, roomapi.IsRetryable(err))
}

func TestIsRoomActive(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/v1/room/{roomID}/status", func(w http.ResponseWriter, req *http.Request) {
		switch chi.URLParam(req, "roomID") {
		case "live-room":
			w.Write([]byte(`{"active":true}`))
		case "idle-room":
			w.Write([]byte(`{"active":false}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"room not found"}`))
		}
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	client := newTestClient(ts.URL)
	ctx := context.Background()

	active, err := client.IsRoomActive(ctx, "live-room")
	assert.NoError(t, err)
	assert.True(t, active)

	active, err = client.IsRoomActive(ctx, "idle-room")
	assert.NoError(t, err)
	assert.False(t, active)

	// room-not-found is absorbed into false, never an error
	active, err = client.IsRoomActive(ctx, "gone-room")
	assert.NoError(t, err)
	assert.False(t, active)
}

func TestTransportErrorIsRetryableNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url_ := ts.URL
	ts.Close() // nothing listening anymore

	client := roomapi.NewClient(&roomapi.ClientConfig{
		BaseURL:    url_,
		OrgID:      "org-test",
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
	_, err := client.CreateRoom(context.Background(), validCreateRequest())
	assert.Error(t, err)
	e, ok := roomapi.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, roomapi.ErrorKindNetwork, e.Kind)
	assert.True(t, e.Retryable)
}
