package activityRepo

import (
	"receivault/models"
)

// ActivityRepository defines methods for activity feed data access.
type ActivityRepository interface {
	// Record inserts an event; duplicate signatures are ignored so the
	// indexer can replay safely.
	Record(event *models.ActivityEvent) error
	// List retrieves a page of events, newest first, optionally filtered
	// by vault PDA and/or wallet.
	List(vaultPDA, wallet string, cursor string, limit int) ([]models.ActivityEvent, string, int64, error)
}
