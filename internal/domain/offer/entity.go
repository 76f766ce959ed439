package offer

import (
	"time"

	"github.com/google/uuid"
)

// Unknown is the default value for every canonical field the providers
// leave out. The record shape is always fully populated; no nulls.
const Unknown = "unknown"

// JobOffer is the canonical record every provider payload is normalized
// into. Field values other than ID and CreatedAt are plain strings so the
// record round-trips unchanged regardless of which provider produced it.
//
// Skils keeps the historical column name carried over from the first
// schema revision; renaming it would break stored rows and API consumers.
type JobOffer struct {
	ID             uuid.UUID
	JobID          string
	JobType        string
	Title          string
	Location       string
	SalaryRange    string
	CurrencyUnit   string
	Company        string
	CompanyWebSite string
	Industry       string
	Skils          string
	Experience     string
	PostedDate     string
	CreatedAt      time.Time
}

// DedupKey identifies an already-ingested posting. jobId alone is not
// globally unique: a provider may reuse IDs across differently-titled
// postings, so the pair is the identity.
type DedupKey struct {
	JobID string
	Title string
}

func (o JobOffer) DedupKey() DedupKey {
	return DedupKey{JobID: o.JobID, Title: o.Title}
}
