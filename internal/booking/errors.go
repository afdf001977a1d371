package booking

import (
	"errors"
	"fmt"
)

// Kind classifies why an engine operation failed.  Every failure the
// engine returns carries exactly one Kind; anything it could not
// classify is KindInternal.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindAuthRequired
	KindNotEnrolled
	KindTicketIneligible
	KindNoBookingForUser
	KindRoomNotFound
	KindRoomFull
	KindAlreadyBooked
)

var kindNames = map[Kind]string{
	KindInternal:         "internal",
	KindInvalidInput:     "invalid_input",
	KindAuthRequired:     "auth_required",
	KindNotEnrolled:      "not_enrolled",
	KindTicketIneligible: "ticket_ineligible",
	KindNoBookingForUser: "no_booking_for_user",
	KindRoomNotFound:     "room_not_found",
	KindRoomFull:         "room_full",
	KindAlreadyBooked:    "already_booked",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the failure value returned by the engine, the gate and the
// guard.  Op names the operation that failed; Err, when set, is the
// underlying cause.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets the bare-kind values below match any *Error of the same Kind,
// e.g. errors.Is(err, ErrRoomFull).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// Bare-kind values for use with errors.Is.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrAuthRequired     = &Error{Kind: KindAuthRequired}
	ErrNotEnrolled      = &Error{Kind: KindNotEnrolled}
	ErrTicketIneligible = &Error{Kind: KindTicketIneligible}
	ErrNoBookingForUser = &Error{Kind: KindNoBookingForUser}
	ErrRoomNotFound     = &Error{Kind: KindRoomNotFound}
	ErrRoomFull         = &Error{Kind: KindRoomFull}
	ErrAlreadyBooked    = &Error{Kind: KindAlreadyBooked}
)

func fail(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// internal wraps an unclassified error.  An error that is already an
// engine *Error passes through with its Kind intact.
func internal(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Kind: KindInternal, Err: err}
}

// KindOf returns the Kind carried by err, or KindInternal when err is
// not an engine error.  Callers check err != nil first.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
