package relay

import (
	"context"
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataChannelMessages(t *testing.T) {
	s := newTestSink(16)
	d := NewDataChannel(s, webrtc.Configuration{})
	touches := sampleTouches()

	n := d.handleMessage(webrtc.DataChannelMessage{IsString: true, Data: []byte("ping")}, "peer/touch")
	assert.Zero(t, n)

	n = d.handleMessage(webrtc.DataChannelMessage{Data: encode(touches...)}, "peer/touch")
	assert.Equal(t, len(touches), n)
	assertSameTouches(t, touches, drain(s.Queue()))
}

func TestDataChannelAnswerRejectsNonOffer(t *testing.T) {
	d := NewDataChannel(newTestSink(16), webrtc.Configuration{})
	_, err := d.Answer(context.Background(), "peer", webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  "v=0",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected offer")
	assert.Zero(t, d.Peers())
}

func TestDataChannelAnswerBadSDP(t *testing.T) {
	d := NewDataChannel(newTestSink(16), webrtc.Configuration{})
	_, err := d.Answer(context.Background(), "peer", webrtc.SessionDescription{
		Type: webrtc.SDPTypeOffer,
		SDP:  "not sdp",
	})
	require.Error(t, err)
	assert.Zero(t, d.Peers())
	assert.NoError(t, d.Close())
}
