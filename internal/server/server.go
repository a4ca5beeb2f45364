package server

// Server bundles the entity specific HTTP servers. Only the sniper surface
// exists for now.
type Server struct {
	SniperServer
}

func NewServer(
	sniperServer SniperServer,
) Server {
	return Server{
		SniperServer: sniperServer,
	}
}
