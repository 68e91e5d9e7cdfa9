// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client.
//
// Every command that touches the vault asks for the master password, derives
// the key, signs in, runs and locks the session again before returning.
// Neither the key nor the server token outlives the process.
package client
