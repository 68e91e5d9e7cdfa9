// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")
	errNilHandlers         = errors.New("handlers are nil")
	errListenGRPC          = errors.New("error listening on gRPC address")
	errListenHTTP          = errors.New("error listening on HTTP address")
)
