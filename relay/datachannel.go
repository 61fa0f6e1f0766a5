package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pion/webrtc/v4"
)

// DataChannel accepts WebRTC peers whose data channels carry touch packets.
// Each binary message is decoded like a WebSocket message; string messages
// are ignored.
type DataChannel struct {
	sink   *Sink
	config webrtc.Configuration

	mu    sync.Mutex
	peers map[*webrtc.PeerConnection]string
}

// NewDataChannel creates a WebRTC relay feeding sink. config supplies the
// ICE servers; the zero value uses host candidates only.
func NewDataChannel(sink *Sink, config webrtc.Configuration) *DataChannel {
	return &DataChannel{
		sink:   sink,
		config: config,
		peers:  make(map[*webrtc.PeerConnection]string),
	}
}

// Answer creates a peer connection for the remote offer, waits for ICE
// gathering and returns the local answer. The peer stays registered until
// its connection fails or closes, or until Close.
func (d *DataChannel) Answer(ctx context.Context, peer string, offer webrtc.SessionDescription) (*webrtc.SessionDescription, error) {
	if offer.Type != webrtc.SDPTypeOffer {
		return nil, fmt.Errorf("relay: expected offer, got %s", offer.Type)
	}
	pc, err := webrtc.NewPeerConnection(d.config)
	if err != nil {
		return nil, fmt.Errorf("relay: new peer connection: %w", err)
	}

	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		d.Attach(dc, peer)
	})
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		d.sink.logger.Info("relay: peer state", "peer", peer, "state", state.String())
		if state == webrtc.PeerConnectionStateFailed || state == webrtc.PeerConnectionStateClosed {
			d.drop(pc)
		}
	})

	answer, err := d.negotiate(ctx, pc, offer)
	if err != nil {
		pc.Close()
		return nil, err
	}
	d.mu.Lock()
	d.peers[pc] = peer
	d.mu.Unlock()
	return answer, nil
}

func (d *DataChannel) negotiate(ctx context.Context, pc *webrtc.PeerConnection, offer webrtc.SessionDescription) (*webrtc.SessionDescription, error) {
	if err := pc.SetRemoteDescription(offer); err != nil {
		return nil, fmt.Errorf("relay: set remote description: %w", err)
	}
	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		return nil, fmt.Errorf("relay: create answer: %w", err)
	}
	gathered := webrtc.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(answer); err != nil {
		return nil, fmt.Errorf("relay: set local description: %w", err)
	}
	select {
	case <-gathered:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return pc.LocalDescription(), nil
}

// Attach reads touch packets from dc. Answer calls it for every channel a
// remote peer opens; it may also be used on locally created channels.
func (d *DataChannel) Attach(dc *webrtc.DataChannel, peer string) {
	source := peer + "/" + dc.Label()
	dc.OnOpen(func() { d.sink.opened(source) })
	dc.OnClose(func() { d.sink.closed(source, nil) })
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		d.handleMessage(msg, source)
	})
}

func (d *DataChannel) handleMessage(msg webrtc.DataChannelMessage, source string) int {
	if msg.IsString {
		d.sink.logger.Debug("relay: ignoring string message", "source", source)
		return 0
	}
	return d.sink.Deliver(msg.Data, source)
}

func (d *DataChannel) drop(pc *webrtc.PeerConnection) {
	d.mu.Lock()
	_, ok := d.peers[pc]
	delete(d.peers, pc)
	d.mu.Unlock()
	if ok {
		go pc.Close()
	}
}

// Peers returns the number of registered peer connections.
func (d *DataChannel) Peers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.peers)
}

// Close closes every peer connection.
func (d *DataChannel) Close() error {
	d.mu.Lock()
	peers := make([]*webrtc.PeerConnection, 0, len(d.peers))
	for pc := range d.peers {
		peers = append(peers, pc)
	}
	clear(d.peers)
	d.mu.Unlock()

	var errs []error
	for _, pc := range peers {
		if err := pc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
