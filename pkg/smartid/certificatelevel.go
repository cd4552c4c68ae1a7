package smartid

import "strings"

// CertificateLevel is the ordered trust tier of a signer's certificate.
type CertificateLevel string

const (
	CertificateLevelAdvanced  CertificateLevel = "ADVANCED"
	CertificateLevelQualified CertificateLevel = "QUALIFIED"
)

func (l CertificateLevel) rank() int {
	switch CertificateLevel(strings.ToUpper(string(l))) {
	case CertificateLevelAdvanced:
		return 1
	case CertificateLevelQualified:
		return 2
	}
	// unrecognized levels compare as lowest
	return 0
}

// IsAtLeast reports whether the level meets or exceeds the required level.
func (l CertificateLevel) IsAtLeast(required CertificateLevel) bool {
	return l.rank() >= required.rank()
}
