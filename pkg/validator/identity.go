package validator

import (
	"crypto/x509"
	"encoding/asn1"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

// AuthenticationIdentity holds the attributes of an authenticated person,
// extracted from a validated certificate.
type AuthenticationIdentity struct {
	GivenName      string
	Surname        string
	IdentityNumber string
	Country        string
	DocumentNumber string
	// DateOfBirth is nil when neither the certificate nor the identity
	// number carries one.
	DateOfBirth     *time.Time
	AuthCertificate *x509.Certificate
}

var (
	oidGivenName                  = asn1.ObjectIdentifier{2, 5, 4, 42}
	oidSurname                    = asn1.ObjectIdentifier{2, 5, 4, 4}
	oidSubjectDirectoryAttributes = asn1.ObjectIdentifier{2, 5, 29, 9}
	oidDateOfBirth                = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 9, 1}
)

// identity numbers come prefixed with an ETSI semantics identifier in the
// certificate serial number, e.g. PNOEE-30303039914
var etsiIdentifierPrefix = regexp.MustCompile(`^(PAS|IDC|PNO)([A-Z]{2})-`)

func identityFromResponse(response *smartid.AuthenticationResponse) (*AuthenticationIdentity, error) {
	certificate := response.Certificate
	subject := certificate.Subject

	identity := &AuthenticationIdentity{
		IdentityNumber:  etsiIdentifierPrefix.ReplaceAllString(subject.SerialNumber, ""),
		DocumentNumber:  response.DocumentNumber,
		AuthCertificate: certificate,
	}
	if len(subject.Country) > 0 {
		identity.Country = subject.Country[0]
	}
	for _, attribute := range subject.Names {
		value, ok := attribute.Value.(string)
		if !ok {
			continue
		}
		switch {
		case attribute.Type.Equal(oidGivenName):
			identity.GivenName = value
		case attribute.Type.Equal(oidSurname):
			identity.Surname = value
		}
	}

	dateOfBirth, err := DateOfBirthFromCertificate(certificate)
	if err != nil {
		return nil, err
	}
	if dateOfBirth == nil {
		dateOfBirth, err = DateOfBirthFromIdentityNumber(identity.Country, identity.IdentityNumber)
		if err != nil {
			return nil, err
		}
	}
	identity.DateOfBirth = dateOfBirth

	return identity, nil
}

type subjectDirectoryAttribute struct {
	Type   asn1.ObjectIdentifier
	Values []asn1.RawValue `asn1:"set"`
}

// DateOfBirthFromCertificate reads the dedicated date-of-birth attribute
// from the certificate's subject directory attributes extension. Returns
// nil without error when the extension or the attribute is absent.
func DateOfBirthFromCertificate(certificate *x509.Certificate) (*time.Time, error) {
	for _, extension := range certificate.Extensions {
		if !extension.Id.Equal(oidSubjectDirectoryAttributes) {
			continue
		}
		var attributes []subjectDirectoryAttribute
		if _, err := asn1.Unmarshal(extension.Value, &attributes); err != nil {
			return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("could not parse subject directory attributes: %s", err))
		}
		for _, attribute := range attributes {
			if !attribute.Type.Equal(oidDateOfBirth) || len(attribute.Values) == 0 {
				continue
			}
			var dateOfBirth time.Time
			if _, err := asn1.UnmarshalWithParams(attribute.Values[0].FullBytes, &dateOfBirth, "generalized"); err != nil {
				return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("could not parse date of birth attribute: %s", err))
			}
			return &dateOfBirth, nil
		}
	}
	return nil, nil
}

// DateOfBirthFromIdentityNumber derives the date of birth embedded in a
// national identity number. Countries without a known encoding, and newer
// Latvian numbers which deliberately carry no birth date, yield nil.
func DateOfBirthFromIdentityNumber(country, identityNumber string) (*time.Time, error) {
	switch strings.ToUpper(country) {
	case smartid.CountryEE, smartid.CountryLT:
		return dateOfBirthFromBalticIDCode(identityNumber)
	case smartid.CountryLV:
		return dateOfBirthFromLatvianIDCode(identityNumber)
	default:
		return nil, nil
	}
}

// Estonian and Lithuanian codes: the first digit encodes century and sex,
// digits 2-7 are YYMMDD.
func dateOfBirthFromBalticIDCode(idCode string) (*time.Time, error) {
	if len(idCode) < 7 {
		return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("identity number '%s' is too short to contain a date of birth", idCode))
	}
	var century int
	switch idCode[0] {
	case '1', '2':
		century = 1800
	case '3', '4':
		century = 1900
	case '5', '6':
		century = 2000
	default:
		return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("identity number '%s' has an unknown century digit", idCode))
	}
	return buildDate(century, idCode[1:3], idCode[3:5], idCode[5:7])
}

// Latvian codes: DDMMYY followed by a century digit (an optional dash in
// between). Newer format numbers start with "32" and carry no birth date.
func dateOfBirthFromLatvianIDCode(idCode string) (*time.Time, error) {
	if strings.HasPrefix(idCode, "32") {
		return nil, nil
	}
	compact := strings.Replace(idCode, "-", "", 1)
	if len(compact) < 7 {
		return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("identity number '%s' is too short to contain a date of birth", idCode))
	}
	var century int
	switch compact[6] {
	case '0':
		century = 1800
	case '1':
		century = 1900
	case '2':
		century = 2000
	default:
		return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("identity number '%s' has an unknown century digit", idCode))
	}
	return buildDate(century, compact[4:6], compact[2:4], compact[0:2])
}

func buildDate(century int, yy, mm, dd string) (*time.Time, error) {
	year, err1 := strconv.Atoi(yy)
	month, err2 := strconv.Atoi(mm)
	day, err3 := strconv.Atoi(dd)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, smartid.NewUnprocessableResponseError("identity number does not contain a numeric date of birth")
	}
	date := time.Date(century+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values, so an impossible date slips
	// through unless the components are compared back
	if date.Year() != century+year || date.Month() != time.Month(month) || date.Day() != day {
		return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("identity number contains an invalid date of birth %02d.%02d", day, month))
	}
	return &date, nil
}
