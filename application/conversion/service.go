package conversion

import (
	"context"
	"log/slog"

	"audio-converter/domain/audio"
)

// Service coordinates a single conversion: validate, then transcode
type Service struct {
	validator  *Validator
	transcoder audio.Transcoder
	logger     *slog.Logger
}

// NewService creates a new conversion Service.
// toolPath is the startup-resolved transcoder location checked before each run.
func NewService(transcoder audio.Transcoder, fileChecker audio.FileChecker, toolPath string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		validator:  NewValidator(fileChecker, toolPath),
		transcoder: transcoder,
		logger:     logger,
	}
}

// Convert runs one request to completion and returns its outcome.
// The call blocks until the transcoder exits. Failures are terminal: nothing
// is retried and partially written output is left in place.
func (s *Service) Convert(ctx context.Context, req audio.ConversionRequest) audio.Outcome {
	outputPath := req.EffectiveOutputPath()

	s.logger.Info("starting conversion",
		slog.String("source", req.SourcePath),
		slog.String("output", outputPath),
		slog.String("format", req.Audio.Format),
	)

	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn("conversion rejected",
			slog.String("source", req.SourcePath),
			slog.String("error", err.Error()),
		)
		return audio.Failed(err)
	}

	if err := s.transcoder.Transcode(ctx, req); err != nil {
		s.logger.Error("conversion failed",
			slog.String("source", req.SourcePath),
			slog.String("error", err.Error()),
		)
		return audio.Failed(err)
	}

	s.logger.Info("conversion succeeded", slog.String("output", outputPath))
	return audio.Succeeded(outputPath)
}
