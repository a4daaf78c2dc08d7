package brochure

import "time"

// Brochure is an uploaded marketing PDF. Only the most recently uploaded
// brochure is served; older ones stay around for bookkeeping.
type Brochure struct {
	ID         string    `bson:"_id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Path       string    `bson:"fileUrl" json:"-"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
