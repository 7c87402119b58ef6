// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the device-side client application runtime.
//
// It wires the session controller, client services, and the background
// record janitor into a single process lifecycle: unlock, run until the
// session locks or a stop signal arrives, release key material.
package client
