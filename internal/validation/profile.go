package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const minGraduationYear = 1950

var phoneRegex = regexp.MustCompile(`^[0-9 +\-()]{7,20}$`)

// ValidateEmail checks that email is a single bare address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 255 {
		return fmt.Errorf("email must not exceed 255 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidatePhone allows digits, spaces and +-() with 7 to 20 characters.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("phone must be 7-20 characters of digits, spaces or +-()")
	}
	return nil
}

// ValidateGraduationYear checks year against [1950, current year + 6].
func ValidateGraduationYear(year int) error {
	return validateGraduationYearAt(year, time.Now())
}

func validateGraduationYearAt(year int, now time.Time) error {
	maxYear := now.Year() + 6
	if year < minGraduationYear || year > maxYear {
		return fmt.Errorf("graduationYear must be between %d and %d", minGraduationYear, maxYear)
	}
	return nil
}

// ValidateLinkedIn accepts an empty value or an http(s) URL on linkedin.com.
func ValidateLinkedIn(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("linkedin must be an http(s) URL")
	}
	host := strings.ToLower(u.Hostname())
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return fmt.Errorf("linkedin must point to linkedin.com")
	}
	return nil
}
