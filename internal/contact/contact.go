// Package contact canonicalizes phone numbers and email addresses and builds
// the order-independent participant key that identifies a conversation.
package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidFormat is wrapped by every normalization failure.
var ErrInvalidFormat = errors.New("invalid contact format")

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9\-]+(\.[a-z0-9\-]+)*\.[a-z]{2,}$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Normalize canonicalizes a raw contact identifier. Inputs containing "@" are
// treated as email addresses, everything else as phone numbers.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty contact", ErrInvalidFormat)
	}
	if strings.Contains(trimmed, "@") {
		return normalizeEmail(trimmed)
	}
	return normalizePhone(trimmed)
}

// normalizePhone returns the E.164 form of a phone number. Numbers that do not
// parse as international get their separators stripped and a +1 country code
// prepended before a second attempt.
func normalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		digits := nonDigits.ReplaceAllString(raw, "")
		if digits == "" {
			return "", fmt.Errorf("%w: %q is not a phone number", ErrInvalidFormat, raw)
		}
		candidate := "+" + digits
		if !strings.HasPrefix(raw, "+") {
			candidate = "+1" + digits
		}
		num, err = phonenumbers.Parse(candidate, "")
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a phone number", ErrInvalidFormat, raw)
		}
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q is not a valid phone number", ErrInvalidFormat, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// normalizeEmail lowercases the address and applies Gmail aliasing rules:
// dots in the local part are insignificant, everything after the first "+" is
// a tag, and googlemail.com is the same mailbox as gmail.com. Other providers
// keep their local part untouched.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: %q is not a valid email address", ErrInvalidFormat, raw)
	}
	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		local = strings.ReplaceAll(local, ".", "")
		if i := strings.Index(local, "+"); i >= 0 {
			local = local[:i]
		}
		if local == "" {
			return "", fmt.Errorf("%w: %q is not a valid email address", ErrInvalidFormat, raw)
		}
		return local + "@gmail.com", nil
	}
	return email, nil
}

// Key serializes two already-normalized contacts into the conversation lookup
// key: a lexicographically sorted two-element JSON array. Key(a, b) == Key(b, a).
func Key(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	encoded, _ := json.Marshal(pair)
	return string(encoded)
}

// BuildKey normalizes both raw contacts and returns their participant key.
// Failures from both sides are joined so callers see every bad input.
func BuildKey(rawA, rawB string) (string, error) {
	a, errA := Normalize(rawA)
	b, errB := Normalize(rawB)
	if errA != nil || errB != nil {
		return "", errors.Join(errA, errB)
	}
	return Key(a, b), nil
}

// Participants decodes a stored participant key back into its two contacts.
func Participants(key string) ([]string, error) {
	var pair []string
	if err := json.Unmarshal([]byte(key), &pair); err != nil {
		return nil, fmt.Errorf("malformed participant key %q: %w", key, err)
	}
	return pair, nil
}
