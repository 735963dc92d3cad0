package main

import (
	"github.com/phuslu/log"

	"github.com/alnah/go-glossary/internal/canvas"
	"github.com/alnah/go-glossary/internal/config"
	"github.com/alnah/go-glossary/internal/course"
)

// newCanvasStore builds a Canvas API client from a validated config.
func newCanvasStore(cfg *config.Config, logger *log.Logger) (course.PageStore, error) {
	timeout, err := cfg.Canvas.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return canvas.NewClient(
		cfg.Canvas.URL,
		cfg.Canvas.Token,
		canvas.WithLogger(logger),
		canvas.WithRateLimit(cfg.Canvas.RateLimit),
		canvas.WithTimeout(timeout),
	), nil
}
