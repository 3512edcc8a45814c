package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"audio-converter/domain/audio"
)

// Status is the lifecycle state of a batch item
type Status string

const (
	StatusPending    Status = "pending"
	StatusConverting Status = "converting"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// Item is a single planned conversion and its progress
type Item struct {
	ID      string
	Request audio.ConversionRequest
	Status  Status
	Message string
}

// Converter runs one conversion to completion
type Converter interface {
	Convert(ctx context.Context, req audio.ConversionRequest) audio.Outcome
}

// Summary counts item results after a run
type Summary struct {
	Done    int
	Failed  int
	Skipped int
}

// Service runs planned items one at a time
type Service struct {
	converter Converter
	output    io.Writer
	logger    *slog.Logger
	onUpdate  func(*Item)
}

// NewService creates a new batch Service
func NewService(converter Converter, output io.Writer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		converter: converter,
		output:    output,
		logger:    logger,
	}
}

// SetUpdateCallback sets a function called after every status change
func (s *Service) SetUpdateCallback(callback func(*Item)) {
	s.onUpdate = callback
}

// Run converts every pending item in order. Items in any other state are
// skipped. A failed item does not stop the batch.
func (s *Service) Run(ctx context.Context, items []*Item) Summary {
	var sum Summary

	for i, item := range items {
		if item.Status != StatusPending {
			sum.Skipped++
			continue
		}

		s.setStatus(item, StatusConverting, "")
		fmt.Fprintf(s.output, "[%d/%d] Converting %s...\n", i+1, len(items), filepath.Base(item.Request.SourcePath))

		outcome := s.converter.Convert(ctx, item.Request)
		if outcome.Success {
			s.setStatus(item, StatusDone, "")
			sum.Done++
			fmt.Fprintf(s.output, "      Created: %s\n", outcome.OutputPath)
			continue
		}

		s.setStatus(item, StatusFailed, outcome.Message())
		sum.Failed++
		fmt.Fprintf(s.output, "      Failed: %s\n", outcome.Message())
	}

	s.logger.Info("batch finished",
		slog.Int("done", sum.Done),
		slog.Int("failed", sum.Failed),
		slog.Int("skipped", sum.Skipped),
	)

	return sum
}

func (s *Service) setStatus(item *Item, status Status, message string) {
	item.Status = status
	item.Message = message
	s.logger.Debug("batch item updated",
		slog.String("id", item.ID),
		slog.String("status", string(status)),
	)
	if s.onUpdate != nil {
		s.onUpdate(item)
	}
}
