package admin

import "time"

// Account is the admin account that owns the site. Only one row exists in practice, but every
// operation addresses it by ID.
type Account struct {
	ID                   uint
	Username             string
	Email                string
	PasswordHashed       string
	ContactMail          *string
	VerificationCode     *string
	VerificationExpires  *time.Time
	VerificationAttempts int
	TokenGeneration      int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SetVerificationCode stores a fresh code, replacing any pending one.
func (a *Account) SetVerificationCode(code string, expires time.Time) {
	a.VerificationCode = &code
	a.VerificationExpires = &expires
	a.VerificationAttempts = 0
}

// ClearVerificationCode drops the pending code. Code and expiry are always cleared together.
func (a *Account) ClearVerificationCode() {
	a.VerificationCode = nil
	a.VerificationExpires = nil
	a.VerificationAttempts = 0
}

func (a *Account) HasVerificationCode() bool {
	return a.VerificationCode != nil && a.VerificationExpires != nil
}

// CodeMatches reports whether code equals the pending verification code.
func (a *Account) CodeMatches(code string) bool {
	return a.HasVerificationCode() && *a.VerificationCode == code
}

// CodeExpired reports whether the pending code is past its expiry at now.
// A code is still valid at exactly its expiry instant.
func (a *Account) CodeExpired(now time.Time) bool {
	if a.VerificationExpires == nil {
		return true
	}
	return now.After(*a.VerificationExpires)
}

func (a *Account) ContactAddress() string {
	if a.ContactMail == nil {
		return ""
	}
	return *a.ContactMail
}
