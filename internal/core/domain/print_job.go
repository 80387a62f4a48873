package domain

import "time"

const (
	PrintJobTest       = "test"
	PrintJobProduction = "production"
)

// PrintJob is the audit record of a print-file submission. Code is the
// plain operator code; only CodeHash is ever stored.
type PrintJob struct {
	ID             string          `json:"id" bson:"_id"`
	BrowserContext string          `json:"browserContext" bson:"browser_context"`
	UserID         int64           `json:"userId" bson:"user_id"`
	Login          string          `json:"login" bson:"login"`
	Kind           string          `json:"kind" bson:"kind"`
	Orientation    Orientation     `json:"orientation" bson:"orientation"`
	Positions      []PrintPosition `json:"positions" bson:"positions"`
	Code           string          `json:"-" bson:"-"`
	CodeHash       string          `json:"-" bson:"code_hash,omitempty"`
	Link           string          `json:"link,omitempty" bson:"link,omitempty"`
	Success        bool            `json:"success" bson:"success"`
	ErrorMessage   string          `json:"errorMessage,omitempty" bson:"error_message,omitempty"`
	SubmittedAt    time.Time       `json:"submittedAt" bson:"submitted_at"`
}
