package errors

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the calendar date format accepted on the command line and in
// configuration files.
const DateLayout = "2006-01-02"

// loginRegex matches GitHub user and organization logins: alphanumerics and
// single hyphens, not starting or ending with a hyphen, at most 39 characters.
var loginRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// repoNameRegex matches repository names GitHub accepts.
var repoNameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)

// ValidateLogin validates a GitHub user or organization login.
func ValidateLogin(login string) error {
	if login == "" {
		return New(ErrCodeInvalidLogin, "login cannot be empty")
	}
	if !loginRegex.MatchString(login) {
		return New(ErrCodeInvalidLogin, "invalid GitHub login: %q", login)
	}
	return nil
}

// ValidateRepoName validates a repository name (without the owner) for safety.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences ("." and ".." are reserved)
//   - Only characters GitHub itself allows
func ValidateRepoName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRepo, "repository name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRepo, "repository name contains invalid control characters")
		}
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidRepo, "repository name cannot be %q", name)
	}

	if !repoNameRegex.MatchString(name) {
		return New(ErrCodeInvalidRepo, "invalid repository name: %q", name)
	}

	return nil
}

// ParseRepoRef splits an "owner/name" reference and validates both halves.
// When ref has no slash, defaultOwner is used as the owner.
func ParseRepoRef(ref, defaultOwner string) (owner, name string, err error) {
	ref = strings.TrimSpace(ref)
	owner, name, found := strings.Cut(ref, "/")
	if !found {
		owner, name = defaultOwner, ref
	}
	if owner == "" {
		return "", "", New(ErrCodeInvalidRepo, "repository %q has no owner and no default owner is configured", ref)
	}
	if err := ValidateLogin(owner); err != nil {
		return "", "", Wrap(ErrCodeInvalidRepo, err, "invalid owner in %q", ref)
	}
	if err := ValidateRepoName(name); err != nil {
		return "", "", err
	}
	return owner, name, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, Wrap(ErrCodeInvalidDateRange, err, "invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// ValidateDateRange ensures start is not after end.
func ValidateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return New(ErrCodeInvalidDateRange, "date range needs both a start and an end")
	}
	if start.After(end) {
		return New(ErrCodeInvalidDateRange, "start %s is after end %s",
			start.Format(DateLayout), end.Format(DateLayout))
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
