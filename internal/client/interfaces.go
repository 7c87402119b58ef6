// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the minimal lifecycle contract for the vault client runtime.
type Client interface {
	// Run starts the client and blocks until the session locks or a stop
	// signal arrives.
	Run() error
}
