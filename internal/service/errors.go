package service

import (
	"errors"
	"fmt"
)

// RejectKind classifies business rejections. Anything a service returns that
// is not a *Rejection is a storage failure: logged internally and surfaced to
// the client as an opaque 500.
type RejectKind string

const (
	RejectInvalidInput          RejectKind = "invalid_input"
	RejectAccessDenied          RejectKind = "access_denied"
	RejectNotFound              RejectKind = "not_found"
	RejectInsufficientInventory RejectKind = "insufficient_inventory"
	RejectInvalidState          RejectKind = "invalid_state"
)

// Rejection is a business rejection: safe to show to the caller verbatim.
type Rejection struct {
	Kind    RejectKind
	Message string
}

func (r *Rejection) Error() string { return r.Message }

func rejectf(kind RejectKind, format string, args ...interface{}) error {
	return &Rejection{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsRejection unwraps err into a *Rejection if it is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsKind reports whether err is a Rejection of the given kind.
func IsKind(err error, kind RejectKind) bool {
	r, ok := AsRejection(err)
	return ok && r.Kind == kind
}
