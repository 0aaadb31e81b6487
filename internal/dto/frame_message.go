package dto

// FrameMessage is pushed to websocket viewers for every annotated frame.
type FrameMessage struct {
	Location string       `json:"location"`
	Image    string       `json:"image"` // base64 JPEG
	Summary  FrameSummary `json:"summary"`
}
