package fetch

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

// IdentityProvider supplies the User-Agent header for document downloads. It
// is an interface so tests and the setup check can pin a deterministic value.
type IdentityProvider interface {
	UserAgent() string
}

// FakedIdentity generates a fresh "First Last email" identity per request,
// the form EDGAR expects from automated clients.
type FakedIdentity struct {
	faker *gofakeit.Faker
}

// NewFakedIdentity creates a randomly seeded identity generator.
func NewFakedIdentity() *FakedIdentity {
	return &FakedIdentity{faker: gofakeit.New(0)}
}

func (f *FakedIdentity) UserAgent() string {
	return fmt.Sprintf("%s %s %s", f.faker.FirstName(), f.faker.LastName(), f.faker.Email())
}

// StaticIdentity returns itself as the User-Agent. Used in tests and by the
// setup check.
type StaticIdentity string

func (s StaticIdentity) UserAgent() string {
	return string(s)
}
