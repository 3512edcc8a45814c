package ffmpeg

import (
	"strconv"

	"audio-converter/domain/audio"
)

// LogLevel is the ffmpeg verbosity used for every conversion
const LogLevel = "info"

// BuildArgs translates a request into ffmpeg arguments.
// The order matters to ffmpeg's option grammar: -ss and -t follow -i so they
// apply to the output, and the output path is always last.
func BuildArgs(req audio.ConversionRequest) []string {
	args := []string{
		"-v", LogLevel,
		"-i", req.SourcePath,
	}

	if req.HasStart() {
		args = append(args, "-ss", req.StartTime)
	}
	if req.HasDuration() {
		args = append(args, "-t", req.EndTime)
	}

	args = append(args,
		"-metadata", "title="+req.Title,
		"-metadata", "artist="+req.Artist,
	)

	args = append(args,
		"-acodec", req.Audio.Codec(),
		"-ab", req.Audio.Bitrate,
		"-ar", req.Audio.SampleRate,
		"-ac", strconv.Itoa(req.Audio.Channels),
	)

	return append(args, "-y", req.EffectiveOutputPath())
}
