package main

import (
	"context"
	"io"
	"os"

	"github.com/fwojciec/linkcollect/collect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interrupts may be nil, in which case runs are never stopped.
	Interrupts <-chan os.Signal

	Controller *collect.Controller
}

// CollectCmd performs one collection for a URL given on the command line.
type CollectCmd struct {
	URL string
}

// PromptCmd reads URLs from stdin and collects each in turn.
type PromptCmd struct{}
