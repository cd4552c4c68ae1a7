package smartid

import "fmt"

// IdentityType is the document type part of an ETSI semantics identifier.
type IdentityType string

const (
	// IdentityTypePAS identifies a person by passport number.
	IdentityTypePAS IdentityType = "PAS"
	// IdentityTypeIDC identifies a person by national ID card number.
	IdentityTypeIDC IdentityType = "IDC"
	// IdentityTypePNO identifies a person by personal number.
	IdentityTypePNO IdentityType = "PNO"
)

// Commonly used country codes.
const (
	CountryEE = "EE"
	CountryLT = "LT"
	CountryLV = "LV"
	CountryBE = "BE"
)

// SemanticsIdentifier is a structured identity reference of the form
// TYPE+COUNTRY-NUMBER, for example PNOEE-31111111111.
type SemanticsIdentifier struct {
	value string
}

// NewSemanticsIdentifier builds an identifier from its three parts. The
// country code is a two-letter ISO 3166-1 alpha-2 code.
func NewSemanticsIdentifier(identityType IdentityType, countryCode, identityNumber string) SemanticsIdentifier {
	return SemanticsIdentifier{value: fmt.Sprintf("%s%s-%s", identityType, countryCode, identityNumber)}
}

// SemanticsIdentifierFromString wraps an already rendered identifier such as
// "PNOEE-31111111111" without re-validating its shape.
func SemanticsIdentifierFromString(value string) SemanticsIdentifier {
	return SemanticsIdentifier{value: value}
}

func (s SemanticsIdentifier) String() string {
	return s.value
}

// IsZero reports whether no identifier was set.
func (s SemanticsIdentifier) IsZero() bool {
	return s.value == ""
}
