package wave

type (
	Header struct {
		Magic             uint32  `json:"magic"`
		Version           uint32  `json:"version"`
		Size              uint32  `json:"size"`
		SampleRate        float32 `json:"sample_rate"`
		SampleCount       uint32  `json:"sample_count"`
		LoopStart         uint32  `json:"loop_start"`
		LoopEnd           uint32  `json:"loop_end"`
		Codec             uint8   `json:"codec"`
		ChannelCount      uint8   `json:"channel_count"`
		Padding           uint16  `json:"padding"`
		StartOffset       uint32  `json:"start_offset"`
		Interleave        uint32  `json:"interleave"`
		CoefficientOffset uint32  `json:"coefficient_offset"`
	}
	// Channel is the per-channel coefficient block. The loop triple is kept as read.
	Channel struct {
		Coefficients [CoefficientCount]int16 `json:"coefficients"`
		InitialScale int16                   `json:"initial_scale"`
		History1     int16                   `json:"history_1"`
		History2     int16                   `json:"history_2"`
		LoopScale    int16                   `json:"loop_scale"`
		LoopHistory1 int16                   `json:"loop_history_1"`
		LoopHistory2 int16                   `json:"loop_history_2"`
	}
	Asset struct {
		Header   Header
		Channels []Channel
		// Samples holds SampleCount frames of ChannelCount interleaved values.
		Samples []int16
	}
)

const (
	MagicNumber      uint32 = 0xFEECB7E5
	HeaderSize              = 44
	ChannelSize             = 44
	CoefficientCount        = 16
	SamplesPerBlock         = 14
	BytesPerSample          = 2
)
