// Package normalize converts raw provider payloads into canonical job-offer
// records. Two payload families are recognized: a keyed map under
// data.jobsList (the map key is the job ID) and a plain sequence under jobs.
// Adding a provider with a third shape means adding one family decoder here;
// the per-job field probing is shared by all families.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/MiMmohammdi/job-offers-api/internal/domain/offer"
)

// currencyNames maps ISO codes and leading salary symbols to the
// human-readable unit stored on the record. Codes missing from the table
// pass through as-is; only a fully unresolvable currency becomes "unknown".
var currencyNames = map[string]string{
	"USD": "Dollar",
	"EUR": "Euro",
	"GBP": "Pound",
	"JPY": "Yen",
	"INR": "Rupee",
	"RUB": "Rouble",
	"KRW": "Won",
	"$":   "Dollar",
	"€":   "Euro",
	"£":   "Pound",
	"¥":   "Yen",
	"₹":   "Rupee",
	"₽":   "Rouble",
	"₩":   "Won",
}

// envelope covers both recognized payload families. jobsList is checked
// first; a payload carrying neither yields zero records without error.
type envelope struct {
	Data *struct {
		JobsList map[string]json.RawMessage `json:"jobsList"`
	} `json:"data"`
	Jobs []json.RawMessage `json:"jobs"`
}

// rawJob carries every source field name the probes recognize, across both
// families. Polymorphic fields (location can be an object or a string, ids
// can be strings or numbers) stay raw until resolved.
type rawJob struct {
	JobID        json.RawMessage `json:"jobId"`
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Position     string          `json:"position"`
	Type         string          `json:"type"`
	Location     json.RawMessage `json:"location"`
	Details      json.RawMessage `json:"details"`
	Compensation json.RawMessage `json:"compensation"`
	Company      json.RawMessage `json:"company"`
	Employer     json.RawMessage `json:"employer"`
	Requirements *requirements   `json:"requirements"`
	Skills       []string        `json:"skills"`
	PostedDate   string          `json:"postedDate"`
	DatePosted   string          `json:"datePosted"`
}

type locationFields struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Remote   bool   `json:"remote"`
	Location string `json:"location"`
}

type compensationFields struct {
	Min         json.Number `json:"min"`
	Max         json.Number `json:"max"`
	Currency    string      `json:"currency"`
	SalaryRange string      `json:"salaryRange"`
}

type employerFields struct {
	CompanyName string `json:"companyName"`
	Name        string `json:"name"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
}

type detailsFields struct {
	Type string `json:"type"`
}

type requirements struct {
	Experience   json.RawMessage `json:"experience"`
	Technologies []string        `json:"technologies"`
}

// Parse converts one raw provider payload into canonical records.
//
// A malformed individual entry aborts the remainder of its batch: records
// extracted before the bad entry are returned alongside the error, and the
// caller logs and moves on. Known limitation, kept for parity with the
// original ingestion behavior.
func Parse(payload []byte) ([]offer.JobOffer, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	switch {
	case env.Data != nil && env.Data.JobsList != nil:
		return parseJobsMap(env.Data.JobsList)
	case env.Jobs != nil:
		return parseJobsList(env.Jobs)
	default:
		// Unrecognized shape is a silent empty yield, not a failure.
		return nil, nil
	}
}

// parseJobsMap handles the keyed-map family. Entries normally carry no ID of
// their own; the map key fills in jobId unless the entry overrides it.
func parseJobsMap(entries map[string]json.RawMessage) ([]offer.JobOffer, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]offer.JobOffer, 0, len(entries))
	for _, key := range keys {
		var j rawJob
		if err := json.Unmarshal(entries[key], &j); err != nil {
			return out, fmt.Errorf("decode job %q: %w", key, err)
		}
		rec := resolve(j)
		// The map key is the job ID unless the entry carries its own jobId;
		// an id field alone never shadows the key.
		rec.JobID = firstNonEmpty(rawScalar(j.JobID), key)
		out = append(out, rec)
	}
	return out, nil
}

// parseJobsList handles the sequence family; each element is one job object.
func parseJobsList(entries []json.RawMessage) ([]offer.JobOffer, error) {
	out := make([]offer.JobOffer, 0, len(entries))
	for i, raw := range entries {
		var j rawJob
		if err := json.Unmarshal(raw, &j); err != nil {
			return out, fmt.Errorf("decode job at index %d: %w", i, err)
		}
		out = append(out, resolve(j))
	}
	return out, nil
}

// resolve applies the shared field probes: each canonical field tries its
// prioritized source names and falls back to "unknown" when all miss.
func resolve(j rawJob) offer.JobOffer {
	loc := chooseObject[locationFields](j.Location, j.Details)
	comp := chooseObject[compensationFields](j.Compensation, j.Details)
	emp := chooseObject[employerFields](j.Employer, j.Company)

	var det detailsFields
	decodeLoose(j.Details, &det)

	salaryRange := resolveSalaryRange(comp)

	// A bare-string location has no fields to probe but is still a usable
	// value.
	location := resolveLocation(loc)
	if location == offer.Unknown {
		location = firstNonEmpty(rawScalar(j.Location), offer.Unknown)
	}

	return offer.JobOffer{
		JobID:          firstNonEmpty(rawScalar(j.JobID), rawScalar(j.ID), offer.Unknown),
		Title:          firstNonEmpty(j.Position, j.Title, offer.Unknown),
		Location:       location,
		SalaryRange:    salaryRange,
		CurrencyUnit:   resolveCurrencyUnit(comp.Currency, salaryRange),
		Company:        firstNonEmpty(emp.CompanyName, emp.Name, offer.Unknown),
		CompanyWebSite: firstNonEmpty(emp.Website, offer.Unknown),
		Industry:       firstNonEmpty(emp.Industry, offer.Unknown),
		JobType:        firstNonEmpty(j.Type, det.Type, offer.Unknown),
		Skils:          resolveSkills(j.Requirements, j.Skills),
		Experience:     resolveExperience(j.Requirements),
		PostedDate:     firstNonEmpty(j.DatePosted, j.PostedDate, offer.Unknown),
	}
}

func resolveLocation(loc locationFields) string {
	if loc.City != "" && loc.State != "" {
		suffix := " (OnSite)"
		if loc.Remote {
			suffix = " (Remote)"
		}
		return loc.City + ", " + loc.State + suffix
	}
	if loc.Location != "" {
		return loc.Location
	}
	return offer.Unknown
}

func resolveSalaryRange(comp compensationFields) string {
	if nonZeroNumber(comp.Min) && nonZeroNumber(comp.Max) {
		return comp.Min.String() + " - " + comp.Max.String()
	}
	if comp.SalaryRange != "" {
		return comp.SalaryRange
	}
	return offer.Unknown
}

// resolveCurrencyUnit prefers an explicit currency code, then the leading
// symbol of the salary range. Recognized values map to a readable name;
// unrecognized explicit codes pass through untouched.
func resolveCurrencyUnit(currency, salaryRange string) string {
	if currency == "" {
		currency = currencyFromSalary(salaryRange)
	}
	if name, ok := currencyNames[currency]; ok {
		return name
	}
	if currency != "" {
		return currency
	}
	return offer.Unknown
}

func currencyFromSalary(salaryRange string) string {
	trimmed := strings.TrimSpace(salaryRange)
	if trimmed == "" {
		return offer.Unknown
	}
	first := string([]rune(trimmed)[0])
	if _, ok := currencyNames[first]; ok {
		return first
	}
	return offer.Unknown
}

func resolveSkills(req *requirements, skills []string) string {
	if req != nil && len(req.Technologies) > 0 {
		return strings.Join(req.Technologies, ", ")
	}
	if len(skills) > 0 {
		return strings.Join(skills, ", ")
	}
	return offer.Unknown
}

// resolveExperience keeps the provider's value verbatim: numbers render as
// their source text, free text passes through.
func resolveExperience(req *requirements) string {
	if req == nil {
		return offer.Unknown
	}
	raw := bytes.TrimSpace(req.Experience)
	if len(raw) == 0 || string(raw) == "null" {
		return offer.Unknown
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return offer.Unknown
}

// chooseObject mirrors the probing rule "use the primary source object if
// present at all, otherwise the fallback object". A primary that is present
// but not an object (e.g. a bare string) still wins the choice and simply
// contributes no fields.
func chooseObject[T any](primary, fallback json.RawMessage) T {
	var out T
	if tokenPresent(primary) {
		decodeLoose(primary, &out)
		return out
	}
	decodeLoose(fallback, &out)
	return out
}

// tokenPresent reports whether a raw value would be treated as set:
// null, empty input, and the empty string are absent.
func tokenPresent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return false
	}
	switch string(t) {
	case "null", `""`:
		return false
	}
	return true
}

// decodeLoose fills out from raw when shapes line up and silently leaves it
// zero-valued when they do not. Providers disagree on types, not just names.
func decodeLoose(raw json.RawMessage, out any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, out)
}

// rawScalar renders a raw string or number token as text; other shapes
// resolve to empty.
func rawScalar(raw json.RawMessage) string {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || string(t) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(t, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(t, &n); err == nil {
		return n.String()
	}
	return ""
}

func nonZeroNumber(n json.Number) bool {
	if n.String() == "" {
		return false
	}
	f, err := n.Float64()
	if err != nil {
		return false
	}
	return f != 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
