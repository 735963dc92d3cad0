package main

import (
	"io"
	"os"

	"github.com/phuslu/log"

	"github.com/alnah/go-glossary/internal/config"
	"github.com/alnah/go-glossary/internal/course"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// NewStore builds the page store from a validated config.
	NewStore func(cfg *config.Config, logger *log.Logger) (course.PageStore, error)
}

// DefaultEnv returns the production environment backed by the Canvas API.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		NewStore: newCanvasStore,
	}
}
