// Package store holds the dispatcher's in-memory state: the connection
// registry, the room membership index, and the stream state store. None
// of it is locked — every table is owned by the dispatch goroutine,
// which is the only reader and the only writer.
package store

import "github.com/PritamP20/Streamer.fun/internal/domain"

// Registry maps connection ids to their declared identity.
type Registry struct {
	identities map[string]*domain.Identity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{identities: make(map[string]*domain.Identity)}
}

// SetIdentity records or replaces a connection's identity.
func (r *Registry) SetIdentity(connID string, id *domain.Identity) {
	r.identities[connID] = id
}

// Identity returns the connection's identity, or nil if it never joined.
func (r *Registry) Identity(connID string) *domain.Identity {
	return r.identities[connID]
}

// Remove drops the connection's entry. No-op if absent.
func (r *Registry) Remove(connID string) {
	delete(r.identities, connID)
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.identities)
}
