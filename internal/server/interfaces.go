package server

// Server runs the configured transports of the vault server.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts
	// every transport down.
	RunServer()

	// Shutdown stops accepting connections and drains in-flight requests.
	Shutdown()
}

var (
	_ Server = (*server)(nil)
	_ Server = (*httpServer)(nil)
	_ Server = (*grpcServer)(nil)
)
