package model

import "time"

// Enrollment is a user's registration for the event.  Only enrollments
// that have an address on file count as proof of registration; the
// repository never returns one without it.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who enrolled (unique).
//  Name      – attendee's full name.
//  CPF       – national document number.
//  Birthday  – attendee's date of birth.
//  Phone     – contact phone number.
//  Address   – the enrollment's address row.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Enrollment struct {
	ID        uint64    // enrollments.id
	UserID    uint64    // enrollments.user_id
	Name      string    // enrollments.name
	CPF       string    // enrollments.cpf
	Birthday  time.Time // enrollments.birthday
	Phone     string    // enrollments.phone
	Address   Address
	CreatedAt time.Time // enrollments.created_at
	UpdatedAt time.Time // enrollments.updated_at
}

// Address belongs to exactly one enrollment.
type Address struct {
	ID            uint64  // addresses.id
	EnrollmentID  uint64  // addresses.enrollment_id
	CEP           string  // addresses.cep
	Street        string  // addresses.street
	City          string  // addresses.city
	State         string  // addresses.state
	Number        string  // addresses.number
	Neighborhood  string  // addresses.neighborhood
	AddressDetail *string // addresses.address_detail (nullable)
}
