package transport

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tevino/abool"

	"github.com/pion/webrtc/v3"
)

// WebRTCConn binds a managed media client (a pion peer connection with
// a control data channel) to the Conn interface. ICE state changes are
// synthesized into inbound session messages so the event mapper sees
// the same vocabulary on every surface. Signaling (SDP/candidate
// exchange) stays with the host; use PeerConnection for it.
type WebRTCConn struct {
	pc *webrtc.PeerConnection

	dcMu sync.Mutex
	dc   *webrtc.DataChannel

	connected     *abool.AtomicBool
	everConnected *abool.AtomicBool

	callbackMu   sync.Mutex
	onMessage    func([]byte)
	onConnect    func()
	onDisconnect func()

	logger zerolog.Logger
}

func NewWebRTCConn(wc webrtc.Configuration, logger zerolog.Logger) (*WebRTCConn, error) {
	pc, err := webrtc.NewPeerConnection(wc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to new peer connection")
	}
	if _, err := pc.AddTransceiverFromKind(webrtc.RTPCodecTypeVideo, webrtc.RTPTransceiverInit{Direction: webrtc.RTPTransceiverDirectionRecvonly}); err != nil {
		return nil, err
	}
	if _, err := pc.AddTransceiverFromKind(webrtc.RTPCodecTypeAudio, webrtc.RTPTransceiverInit{Direction: webrtc.RTPTransceiverDirectionRecvonly}); err != nil {
		return nil, err
	}
	conn := &WebRTCConn{
		pc:            pc,
		connected:     abool.New(),
		everConnected: abool.New(),
		logger:        logger,
	}

	dc, err := pc.CreateDataChannel("control", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create data channel")
	}
	dc.OnOpen(func() {
		conn.dcMu.Lock()
		conn.dc = dc
		conn.dcMu.Unlock()
	})
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		conn.deliver(msg.Data)
	})

	pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		conn.logger.Debug().Str("kind", track.Kind().String()).Msg("track subscribed")
		conn.deliver([]byte(`{"type":"trackSubscribed"}`))
	})
	pc.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		conn.logger.Debug().Str("state", state.String()).Msg("ice connection state changed")
		switch state {
		case webrtc.ICEConnectionStateConnected:
			conn.connected.Set()
			if conn.everConnected.SetToIf(false, true) {
				conn.fireConnect()
				conn.deliver([]byte(`{"type":"connected"}`))
			} else {
				conn.deliver([]byte(`{"type":"reconnected"}`))
			}
		case webrtc.ICEConnectionStateDisconnected:
			conn.connected.UnSet()
			conn.deliver([]byte(`{"type":"reconnecting"}`))
		case webrtc.ICEConnectionStateFailed:
			conn.connected.UnSet()
			conn.deliver([]byte(`{"type":"error","reason":"iceFailed"}`))
			conn.fireDisconnect()
		case webrtc.ICEConnectionStateClosed:
			conn.connected.UnSet()
			conn.deliver([]byte(`{"type":"disconnected"}`))
			conn.fireDisconnect()
		}
	})
	return conn, nil
}

func (c *WebRTCConn) PeerConnection() *webrtc.PeerConnection {
	return c.pc
}

func (c *WebRTCConn) SendMessage(ctx context.Context, data []byte) error {
	if c.connected.IsNotSet() {
		return errors.New("not connected")
	}
	c.dcMu.Lock()
	defer c.dcMu.Unlock()
	if c.dc == nil {
		return errors.New("control channel not open")
	}
	return c.dc.Send(data)
}

func (c *WebRTCConn) OnMessage(f func(data []byte)) {
	c.callbackMu.Lock()
	defer c.callbackMu.Unlock()
	c.onMessage = f
}

func (c *WebRTCConn) OnConnect(f func()) {
	c.callbackMu.Lock()
	defer c.callbackMu.Unlock()
	c.onConnect = f
}

func (c *WebRTCConn) OnDisconnect(f func()) {
	c.callbackMu.Lock()
	defer c.callbackMu.Unlock()
	c.onDisconnect = f
}

func (c *WebRTCConn) Close() error {
	return c.pc.Close()
}

func (c *WebRTCConn) deliver(data []byte) {
	c.callbackMu.Lock()
	h := c.onMessage
	c.callbackMu.Unlock()
	if h != nil {
		h(data)
	}
}

func (c *WebRTCConn) fireConnect() {
	c.callbackMu.Lock()
	h := c.onConnect
	c.callbackMu.Unlock()
	if h != nil {
		h()
	}
}

func (c *WebRTCConn) fireDisconnect() {
	c.callbackMu.Lock()
	h := c.onDisconnect
	c.callbackMu.Unlock()
	if h != nil {
		h()
	}
}
