// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking engine and handlers to distinguish "row absent" from a real
// database failure without inspecting driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrEnrollmentNotFound is returned when the user has no enrollment
// with an address on file.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// ErrTicketNotFound is returned when no ticket exists for the user's
// enrollment.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrRoomNotFound is returned when a room id does not resolve.
var ErrRoomNotFound = errors.New("room not found")

// ErrHotelNotFound is returned when a hotel id does not resolve.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrBookingNotFound is returned when the user has no booking, or when
// an update targets a booking id that does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDuplicateBooking is returned when an insert hits the unique key on
// bookings.user_id.  Handlers should translate this into HTTP 409.
var ErrDuplicateBooking = errors.New("user already has a booking")

// ErrTxConflict is returned by Atomic when the server rolled the
// transaction back to break a deadlock.  Nothing was written and the
// whole unit may be run again.
var ErrTxConflict = errors.New("transaction aborted by deadlock")

// ErrSessionNotFound is returned when a token hash has no session row.
var ErrSessionNotFound = errors.New("session not found")

// mysqlDuplicateEntry is the server error number for a unique key
// violation (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

// mysqlDeadlock is ER_LOCK_DEADLOCK; InnoDB has already rolled back the
// victim transaction when it reports it.
const mysqlDeadlock = 1213

// isDuplicateKey reports whether err is a MySQL unique key violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

func isDeadlock(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDeadlock
}
