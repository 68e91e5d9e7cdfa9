// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"time"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// Prompter asks the user for input.
type Prompter interface {
	// Line reads one line of visible input.
	Line(prompt string) (string, error)
	// Password reads one line without echoing it.
	Password(prompt string) (string, error)
}

// Clipboard is the part of clipboard.Manager the client uses.
type Clipboard interface {
	Available() bool
	Copy(text string, autoClear time.Duration) error
	Wait(ctx context.Context) error
}
