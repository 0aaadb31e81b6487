package display

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"firewatch/internal/dto"
	"firewatch/internal/service/websocket"

	"github.com/hybridgroup/mjpeg"
	"gocv.io/x/gocv"
)

// Broadcaster pushes annotated frames to websocket viewers and an MJPEG stream.
type Broadcaster struct {
	location string
	hub      *websocket.HubService
	stream   *mjpeg.Stream
}

// NewBroadcaster creates a broadcaster; hub and stream may be nil.
func NewBroadcaster(location string, hub *websocket.HubService, stream *mjpeg.Stream) *Broadcaster {
	return &Broadcaster{location: location, hub: hub, stream: stream}
}

// Show encodes the frame once as JPEG and hands it to every consumer.
func (b *Broadcaster) Show(frame gocv.Mat, summary dto.FrameSummary) error {
	if b.hub == nil && b.stream == nil {
		return nil
	}

	buf, err := gocv.IMEncode(".jpg", frame)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	jpeg := make([]byte, len(buf.GetBytes()))
	copy(jpeg, buf.GetBytes())

	if b.stream != nil {
		b.stream.UpdateJPEG(jpeg)
	}

	if b.hub != nil && b.hub.GetClientCount() > 0 {
		msg, err := json.Marshal(dto.FrameMessage{
			Location: b.location,
			Image:    base64.StdEncoding.EncodeToString(jpeg),
			Summary:  summary,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal frame message: %w", err)
		}
		b.hub.Broadcast(msg)
	}

	return nil
}
