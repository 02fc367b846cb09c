package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/models"
)

var (
	// ErrPoolTimeout reports that the store did not yield a connection within
	// the acquisition window.
	ErrPoolTimeout = errors.New("timed out waiting for a database connection")
	// ErrDuplicate reports a store-level unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrNotFound reports that no row matched the given id.
	ErrNotFound = errors.New("record not found")
)

// mysqlDuplicateEntry is the server error code for unique key violations.
const mysqlDuplicateEntry = 1062

// AttendanceRepo is the persistence boundary for attendance records.
type AttendanceRepo interface {
	Create(record *models.Attendance) error
	List() ([]models.Attendance, error)
	Delete(id uint) error
}

// GormAttendanceRepo stores attendance rows through a pooled GORM connection.
// Every operation runs under the acquisition timeout; the pool owns connection
// lifetime, handlers never hold one across requests.
type GormAttendanceRepo struct {
	db             *gorm.DB
	acquireTimeout time.Duration
}

func NewGormAttendanceRepo(db *gorm.DB, acquireTimeout time.Duration) *GormAttendanceRepo {
	if acquireTimeout <= 0 {
		acquireTimeout = 60 * time.Second
	}
	return &GormAttendanceRepo{db: db, acquireTimeout: acquireTimeout}
}

func (r *GormAttendanceRepo) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.acquireTimeout)
}

// Create inserts a new attendance row; the generated id and creation
// timestamp are written back into record.
func (r *GormAttendanceRepo) Create(record *models.Attendance) error {
	ctx, cancel := r.opContext()
	defer cancel()

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return classify(err)
	}
	return nil
}

// List returns every record, most recent date first; same-date rows come back
// in reverse insertion order.
func (r *GormAttendanceRepo) List() ([]models.Attendance, error) {
	ctx, cancel := r.opContext()
	defer cancel()

	records := make([]models.Attendance, 0)
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, classify(err)
	}
	return records, nil
}

// Delete removes the row with the given id, reporting ErrNotFound when no row
// matched.
func (r *GormAttendanceRepo) Delete(id uint) error {
	ctx, cancel := r.opContext()
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Attendance{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// classify maps driver level failures onto the repo's sentinel errors so
// handlers can translate them without inspecting MySQL internals.
func classify(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrPoolTimeout
	}
	return err
}
