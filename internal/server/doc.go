// Package server runs the HTTP API and the gRPC generator service of the
// vault server side by side and stops both on a termination signal.
package server
