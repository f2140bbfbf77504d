package model

// TrackInfo holds read-only technical characteristics of an audio
// container, derived at read time and never persisted back.
type TrackInfo struct {
	DurationSeconds int
	BitrateKbps     int
	SampleRateHz    int
	ChannelCount    int
	Codec           string
	Mode            string
	Version         string
	Layer           string
	TotalFrames     int
	ConstantBitrate bool
}
