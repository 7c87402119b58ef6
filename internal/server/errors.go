// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when the configuration
// carries no HTTP address, leaving nothing to serve. Fatal at startup.
var errNoServersAreCreated = errors.New("no servers are created")
