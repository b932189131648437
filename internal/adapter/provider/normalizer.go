// Package provider converts provider-specific webhook payloads into
// candidate calls. Each meeting platform gets one normalizer; everything
// after normalization is provider-agnostic.
package provider

import (
	"encoding/json"
	"errors"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
)

var errNoMeetingID = errors.New("payload carries no meeting id")

// Provider names as they appear in webhook URL paths and external id maps.
const (
	ProviderFireflies = "fireflies"
	ProviderZoom      = "zoom"
	ProviderFathom    = "fathom"
	ProviderClaap     = "claap"
)

// Normalizer parses one provider's webhook body into a CandidateCall. The
// returned event id, when the provider sends one, keys the delivery journal.
type Normalizer interface {
	Provider() string
	Normalize(payload json.RawMessage, owner *model.User) (*entity.CandidateCall, *string, error)
}

// Registry maps the :provider path segment to its normalizer.
type Registry struct {
	normalizers map[string]Normalizer
}

// NewRegistry builds a registry with all supported providers.
func NewRegistry() *Registry {
	r := &Registry{normalizers: make(map[string]Normalizer)}
	r.Register(NewFirefliesNormalizer())
	r.Register(NewZoomNormalizer())
	r.Register(NewFathomNormalizer())
	r.Register(NewClaapNormalizer())
	return r
}

// Register adds or replaces a normalizer.
func (r *Registry) Register(n Normalizer) {
	r.normalizers[n.Provider()] = n
}

// Get returns the normalizer for a provider name.
func (r *Registry) Get(provider string) (Normalizer, error) {
	n, ok := r.normalizers[provider]
	if !ok {
		return nil, domainErrors.NewUnknownProviderError(provider)
	}
	return n, nil
}

// newCandidate seeds the common candidate fields from the integration owner.
func newCandidate(source string, owner *model.User) *entity.CandidateCall {
	return &entity.CandidateCall{
		OrganizationID: owner.OrganizationID,
		Source:         source,
		ExternalIDs:    make(map[string]string),
	}
}
