// Package permission decides whether an actor may perform an action on a resource.
//
// Checks happen in two steps, mirroring how the HTTP layer runs them: first for
// the endpoint (resource is nil), then for the loaded object.
package permission

import "github.com/VitaminP8/yatube/internal/apperr"

type Action int

const (
	List Action = iota
	Retrieve
	Create
	Update
	PartialUpdate
	Destroy
)

// Safe reports whether the action only reads data.
func (a Action) Safe() bool {
	return a == List || a == Retrieve
}

type Actor struct {
	ID            uint
	Authenticated bool
}

// Anonymous is the actor of a request without credentials.
var Anonymous = Actor{}

// Owned is implemented by resources that have an author.
type Owned interface {
	OwnerID() uint
}

type Reason int

const (
	Allowed Reason = iota
	NotAuthenticated
	NotOwner
)

type Decision struct {
	Reason Reason
}

func (d Decision) Allowed() bool { return d.Reason == Allowed }

// Err converts a denial into the matching application error, nil if allowed.
func (d Decision) Err() error {
	switch d.Reason {
	case NotAuthenticated:
		return apperr.Unauthenticated(apperr.MsgNotAuthenticated)
	case NotOwner:
		return apperr.Forbidden(apperr.MsgForbidden)
	default:
		return nil
	}
}

// Policy is the author-or-read-only rule. With ReadRequiresAuth safe actions
// also need an authenticated actor.
type Policy struct {
	ReadRequiresAuth bool
}

func (p Policy) Check(actor Actor, action Action, resource Owned) Decision {
	if action.Safe() {
		if p.ReadRequiresAuth && !actor.Authenticated {
			return Decision{Reason: NotAuthenticated}
		}
		return Decision{Reason: Allowed}
	}

	if !actor.Authenticated {
		return Decision{Reason: NotAuthenticated}
	}
	if action == Create || resource == nil {
		return Decision{Reason: Allowed}
	}
	if resource.OwnerID() != actor.ID {
		return Decision{Reason: NotOwner}
	}
	return Decision{Reason: Allowed}
}

// Authenticated is the policy for endpoints that need a caller for every
// action, read or write, without an ownership check.
func Authenticated(actor Actor) Decision {
	if !actor.Authenticated {
		return Decision{Reason: NotAuthenticated}
	}
	return Decision{Reason: Allowed}
}
