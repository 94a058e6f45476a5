package opportunity

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("opportunity not found")

type PaymentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Company struct {
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
}

// Opportunity is a read-only catalog entry. The upstream marketplace
// owns its lifecycle; nothing in this service creates or deletes one.
type Opportunity struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	ArtType         string       `json:"artType,omitempty"`
	Location        string       `json:"location,omitempty"`
	PaymentRange    PaymentRange `json:"paymentRange"`
	Company         Company      `json:"company"`
	DatePosted      time.Time    `json:"datePosted"`
	Requirements    []string     `json:"requirements,omitempty"`
	ApplicationLink string       `json:"applicationLink,omitempty"`
}

// FilterSpec narrows a collection. Empty fields are no-ops; fields
// compose with AND, values inside a set field with OR. MinExperience
// applies to artists, MinPayment to opportunities; the other is
// ignored per collection kind.
type FilterSpec struct {
	ArtTypes      []string
	Locations     []string
	MinExperience int
	MinPayment    float64
	Query         string
}

// Empty reports whether the spec is the identity filter.
func (f FilterSpec) Empty() bool {
	return len(f.ArtTypes) == 0 &&
		len(f.Locations) == 0 &&
		f.MinExperience == 0 &&
		f.MinPayment == 0 &&
		f.Query == ""
}
