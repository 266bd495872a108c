package api

// ServerFactory builds API servers. The indirection exists so tests can
// substitute their own server construction.
type ServerFactory interface {
	NewServer(recordStore RecordStore, snapshots SnapshotArchive, config ServerConfig, metrics *Metrics) *Server
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// NewServer builds a server over the given store and archive.
func (f *DefaultServerFactory) NewServer(recordStore RecordStore, snapshots SnapshotArchive, config ServerConfig, metrics *Metrics) *Server {
	return NewServer(recordStore, snapshots, config, metrics)
}
