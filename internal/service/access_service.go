package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// legacyAccessCode is honoured only when no hashed codes are configured.
const legacyAccessCode = "metamorfoza"

// AccessService decides whether an access code unlocks direct questionnaire
// submission. Codes are checked server-side against bcrypt hashes.
type AccessService struct {
	hashes [][]byte
}

// NewAccessService creates an AccessService from bcrypt hashes.
func NewAccessService(hashes []string) *AccessService {
	s := &AccessService{}
	for _, h := range hashes {
		s.hashes = append(s.hashes, []byte(h))
	}
	return s
}

// Grants reports whether code unlocks direct submission.
func (s *AccessService) Grants(code string) bool {
	if code == "" {
		return false
	}
	if len(s.hashes) == 0 {
		return subtle.ConstantTimeCompare([]byte(code), []byte(legacyAccessCode)) == 1
	}
	for _, h := range s.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(code)) == nil {
			return true
		}
	}
	return false
}

// HashAccessCode returns the bcrypt hash to put into ACCESS_CODE_HASHES.
func HashAccessCode(code string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	return string(hash), err
}
