package model

import (
	"time"

	"github.com/google/uuid"
)

// Import job statuses. Cancellation is advisory: the admin sets a flag and the
// worker acknowledges it between feed pages, so a job may still finish the
// page in flight before landing on StatusCancelled.
const (
	ImportPending   = "pending"
	ImportRunning   = "running"
	ImportDone      = "done"
	ImportFailed    = "failed"
	ImportCancelled = "cancelled"
)

// ImportJob tracks one supplier product synchronization run. The admin UI
// polls it for progress; Log accumulates one line per processed feed page.
type ImportJob struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID  uuid.UUID `gorm:"type:uuid;index;not null"`
	RequestedBy uuid.UUID `gorm:"type:uuid;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Processed   int       `gorm:"not null;default:0"`
	Created     int       `gorm:"not null;default:0"`
	Updated     int       `gorm:"not null;default:0"`
	Failed      int       `gorm:"not null;default:0"`
	Log         string    `gorm:"type:text;not null;default:''"`
	Error       *string
	StartedAt   *time.Time
	FinishedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ImportJob) TableName() string { return "import_jobs" }

// Finished reports whether the job reached a terminal status.
func (j *ImportJob) Finished() bool {
	return j.Status == ImportDone || j.Status == ImportFailed || j.Status == ImportCancelled
}
