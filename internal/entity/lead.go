package entity

import (
	"context"
	"errors"
	"time"
)

// Lead status lifecycle. Every captured lead starts at new.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

// SourceLandingPage is the only intake channel right now.
const SourceLandingPage = "Landing Page"

// TagHighValue is the literal tag the high-value campaign segment matches on.
const TagHighValue = "high-value"

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
	Source      string     `json:"source"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastContact *time.Time `json:"lastContact,omitempty"`
	Value       *float64   `json:"value"`
	Notes       string     `json:"notes,omitempty"`
}

func (l Lead) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LeadPatch carries a partial update. Nil fields are left untouched,
// so a PUT body only changes what it names.
type LeadPatch struct {
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	LastContact *time.Time `json:"lastContact,omitempty"`
	Value       *float64   `json:"value,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

func (p LeadPatch) ApplyTo(l *Lead) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Tags != nil {
		l.Tags = *p.Tags
	}
	if p.LastContact != nil {
		l.LastContact = p.LastContact
	}
	if p.Value != nil {
		l.Value = p.Value
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
}

// LeadStore owns the lead collection. Every mutation must be an atomic
// read-modify-write so two concurrent requests cannot lose an update.
type LeadStore interface {
	All(ctx context.Context) ([]Lead, error)
	Append(ctx context.Context, lead Lead) error
	Update(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
	Delete(ctx context.Context, id string) error
}
