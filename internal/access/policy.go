package access

import (
	"net/http"

	"github.com/google/uuid"
)

// Policy is the closed set of access-control variants applied per endpoint.
type Policy int

const (
	// AdminOrReadOnly: anyone may read, only staff may write.
	AdminOrReadOnly Policy = iota
	// OwnerOrReadOnly: anyone may read, only the resource owner may write.
	OwnerOrReadOnly
	// AuthenticatedOrReadOnly: anyone may read, any authenticated caller may write.
	AuthenticatedOrReadOnly
	// AuthenticatedRequired: every request needs an authenticated caller.
	AuthenticatedRequired
)

// Caller is the resolved request identity. The zero value is an anonymous caller.
type Caller struct {
	ID            uuid.UUID
	IsStaff       bool
	Authenticated bool
}

func isReadMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Allow evaluates a policy for a request. It is a pure function of
// (method, caller, resource owner) and performs no I/O. ownerID is only
// consulted for OwnerOrReadOnly and may be uuid.Nil otherwise.
func Allow(p Policy, method string, caller Caller, ownerID uuid.UUID) bool {
	switch p {
	case AdminOrReadOnly:
		if isReadMethod(method) {
			return true
		}
		return caller.Authenticated && caller.IsStaff
	case OwnerOrReadOnly:
		if isReadMethod(method) {
			return true
		}
		return caller.Authenticated && caller.ID == ownerID
	case AuthenticatedOrReadOnly:
		if isReadMethod(method) {
			return true
		}
		return caller.Authenticated
	case AuthenticatedRequired:
		return caller.Authenticated
	default:
		return false
	}
}
