package domain

// Identity is what a connection declared about itself on join. The
// wallet address is optional; the display name falls back to
// AnonymousAuthor at join time.
type Identity struct {
	Author  string
	Address string
}
