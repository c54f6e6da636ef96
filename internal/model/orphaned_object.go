package model

import "time"

// OrphanedObject names an uploaded image whose request failed after the
// upload, so no tbl_predict row points at it.
type OrphanedObject struct {
	Object   string    `json:"object"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}
