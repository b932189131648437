package entity

import (
	"strings"
	"time"
)

// CandidateCall is the normalized, not-yet-persisted form of an inbound
// webhook's meeting data. It lives for a single delivery.
type CandidateCall struct {
	OrganizationID     string            `json:"organization_id"`
	SalesRepID         string            `json:"sales_rep_id"`
	SalesRepEmail      string            `json:"sales_rep_email"`
	SalesRepName       string            `json:"sales_rep_name"`
	Source             string            `json:"source"`
	ScheduledStartTime time.Time         `json:"scheduled_start_time"`
	ExternalIDs        map[string]string `json:"external_ids"`
	Title              string            `json:"title"`
	ParticipantEmails  []string          `json:"participant_emails"`
	ParticipantNames   []string          `json:"participant_names"`
}

// NormalizeEmail lowercases and trims an email for comparison. Different
// providers report the same address with different casing, which must not
// defeat matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeTitle lowercases a meeting title and collapses runs of whitespace.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// NormalizeName lowercases and trims a participant display name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeSet lowercases, trims and deduplicates a participant set,
// dropping empty entries.
func NormalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Normalize canonicalizes the candidate's comparison fields in place.
func (c *CandidateCall) Normalize() {
	c.SalesRepEmail = NormalizeEmail(c.SalesRepEmail)
	c.ParticipantEmails = NormalizeSet(c.ParticipantEmails)
	c.ParticipantNames = NormalizeSet(c.ParticipantNames)
	c.Title = strings.TrimSpace(c.Title)
}

// ExternalID returns the candidate's id for its own source provider.
func (c *CandidateCall) ExternalID() (string, bool) {
	if c.ExternalIDs == nil {
		return "", false
	}
	id, ok := c.ExternalIDs[c.Source]
	return id, ok && id != ""
}
