package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-room-booking/internal/model"
)

// EnrollmentRepo reads enrollments and their addresses.  Enrollment data
// is owned by the registration flow; this service never writes it.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo returns a new EnrollmentRepo bound to the given database.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// FindWithAddressByUserID returns the user's enrollment together with its
// address.  An enrollment without an address is treated as absent and
// yields ErrEnrollmentNotFound, the same as no enrollment at all.
func (r *EnrollmentRepo) FindWithAddressByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	const q = `SELECT e.id, e.user_id, e.name, e.cpf, e.birthday, e.phone, e.created_at, e.updated_at,
                      a.id, a.cep, a.street, a.city, a.state, a.number, a.neighborhood, a.address_detail
               FROM enrollments e
               JOIN addresses a ON a.enrollment_id = e.id
               WHERE e.user_id = ?
               LIMIT 1`
	var (
		e      model.Enrollment
		detail sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&e.ID, &e.UserID, &e.Name, &e.CPF, &e.Birthday, &e.Phone, &e.CreatedAt, &e.UpdatedAt,
		&e.Address.ID, &e.Address.CEP, &e.Address.Street, &e.Address.City, &e.Address.State,
		&e.Address.Number, &e.Address.Neighborhood, &detail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	e.Address.EnrollmentID = e.ID
	if detail.Valid {
		d := detail.String
		e.Address.AddressDetail = &d
	}
	return &e, nil
}
