package audio

// Supported output formats
const (
	FormatMP3  = "mp3"
	FormatAAC  = "aac"
	FormatWAV  = "wav"
	FormatFLAC = "flac"
)

// CodecCopy tells the transcoder to re-mux the source stream without re-encoding
const CodecCopy = "copy"

// Defaults applied when the caller leaves a setting empty
const (
	DefaultFormat     = FormatMP3
	DefaultBitrate    = "320k"
	DefaultSampleRate = "44100"
	DefaultChannels   = 2
)

// AudioEncodingConfig describes the desired output audio encoding.
// Bitrate and SampleRate are passed to the transcoder as given; no unit or
// range checking is done here.
type AudioEncodingConfig struct {
	Format     string `yaml:"format" toml:"format" json:"format"`
	Bitrate    string `yaml:"bitrate" toml:"bitrate" json:"bitrate"`
	SampleRate string `yaml:"sample_rate" toml:"sample_rate" json:"sample_rate"`
	Channels   int    `yaml:"channels" toml:"channels" json:"channels"`
}

// Codec returns the encoder name for the configured format.
// Unrecognised formats (including wav) map to CodecCopy, which means the
// bitrate, sample rate and channel settings have no effect for that output.
func (c AudioEncodingConfig) Codec() string {
	switch c.Format {
	case FormatMP3:
		return "libmp3lame"
	case FormatAAC:
		return "aac"
	case FormatFLAC:
		return "flac"
	default:
		return CodecCopy
	}
}

// IsStreamCopy returns true if the output will not be re-encoded
func (c AudioEncodingConfig) IsStreamCopy() bool {
	return c.Codec() == CodecCopy
}

// WithDefaults fills empty fields from the package defaults
func (c AudioEncodingConfig) WithDefaults() AudioEncodingConfig {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Bitrate == "" {
		c.Bitrate = DefaultBitrate
	}
	if c.SampleRate == "" {
		c.SampleRate = DefaultSampleRate
	}
	if c.Channels == 0 {
		c.Channels = DefaultChannels
	}
	return c
}

// Merge returns c with every non-zero field of override applied on top
func (c AudioEncodingConfig) Merge(override AudioEncodingConfig) AudioEncodingConfig {
	if override.Format != "" {
		c.Format = override.Format
	}
	if override.Bitrate != "" {
		c.Bitrate = override.Bitrate
	}
	if override.SampleRate != "" {
		c.SampleRate = override.SampleRate
	}
	if override.Channels != 0 {
		c.Channels = override.Channels
	}
	return c
}

// TrackMetadata holds descriptive tags for a track.
// It travels with a ConversionRequest but the transcoder currently only
// writes the request's own Title and Artist.
type TrackMetadata struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Genre   string
	Comment string
}
