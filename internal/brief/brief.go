// Package brief normalizes raw generation requests into a validated,
// immutable project brief. Defaults are applied exactly once, here.
package brief

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLength is the maximum length of a project name.
	MaxNameLength = 60
	// MaxTickerLength is the maximum length of a ticker symbol.
	MaxTickerLength = 16
	// MinDescriptionLength is the minimum length of a project description.
	MinDescriptionLength = 8
	// MaxDescriptionLength is the maximum length of a project description.
	MaxDescriptionLength = 4000

	// DefaultPrimaryColor is used when the request omits a primary color.
	DefaultPrimaryColor = "#6c5ce7"
	// DefaultAccentColor is used when the request omits an accent color.
	DefaultAccentColor = "#00cec9"
	// DefaultBackgroundColor is used when the request omits a background color.
	DefaultBackgroundColor = "#0f1020"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidationError describes a single invalid field in a raw request.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("brief validation failed for field '%s': %s", e.Field, e.Message)
}

// Raw is the untrusted inbound request shape before normalization.
type Raw struct {
	Name            string
	Ticker          string
	Description     string
	PrimaryColor    string
	AccentColor     string
	BackgroundColor string
	TwitterURL      string
	TelegramURL     string
	LogoAsset       string
	BackgroundAsset string
}

// Brief is the normalized request. Construct it only through Normalize;
// treat it as read-only afterwards.
type Brief struct {
	Name            string
	Ticker          string
	Description     string
	PrimaryColor    string
	AccentColor     string
	BackgroundColor string
	TwitterURL      string
	TelegramURL     string
	LogoAsset       string
	BackgroundAsset string
}

// Normalize trims, defaults, and validates a raw request. All field
// violations are collected before returning so a caller sees the whole
// picture at once.
func Normalize(raw Raw) (Brief, error) {
	b := Brief{
		Name:            strings.TrimSpace(raw.Name),
		Ticker:          strings.TrimSpace(raw.Ticker),
		Description:     strings.TrimSpace(raw.Description),
		PrimaryColor:    strings.TrimSpace(raw.PrimaryColor),
		AccentColor:     strings.TrimSpace(raw.AccentColor),
		BackgroundColor: strings.TrimSpace(raw.BackgroundColor),
		TwitterURL:      strings.TrimSpace(raw.TwitterURL),
		TelegramURL:     strings.TrimSpace(raw.TelegramURL),
		LogoAsset:       raw.LogoAsset,
		BackgroundAsset: raw.BackgroundAsset,
	}

	if b.PrimaryColor == "" {
		b.PrimaryColor = DefaultPrimaryColor
	}
	if b.AccentColor == "" {
		b.AccentColor = DefaultAccentColor
	}
	if b.BackgroundColor == "" {
		b.BackgroundColor = DefaultBackgroundColor
	}

	var errs []ValidationError

	// Length limits count runes, not bytes, so multibyte names and
	// descriptions are measured the way a user counts them.
	if b.Name == "" || utf8.RuneCountInString(b.Name) > MaxNameLength {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength),
		})
	}

	if b.Ticker == "" || utf8.RuneCountInString(b.Ticker) > MaxTickerLength {
		errs = append(errs, ValidationError{
			Field:   "ticker",
			Message: fmt.Sprintf("ticker must be between 1 and %d characters", MaxTickerLength),
		})
	}

	if descLen := utf8.RuneCountInString(b.Description); descLen < MinDescriptionLength || descLen > MaxDescriptionLength {
		errs = append(errs, ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("description must be between %d and %d characters", MinDescriptionLength, MaxDescriptionLength),
		})
	}

	for _, color := range []struct {
		field string
		value string
	}{
		{"primaryColor", b.PrimaryColor},
		{"accentColor", b.AccentColor},
		{"backgroundColor", b.BackgroundColor},
	} {
		if !hexColorPattern.MatchString(color.value) {
			errs = append(errs, ValidationError{
				Field:   color.field,
				Message: fmt.Sprintf("%q is not a valid hex color token", color.value),
			})
		}
	}

	for _, link := range []struct {
		field string
		value string
	}{
		{"twitterUrl", b.TwitterURL},
		{"telegramUrl", b.TelegramURL},
	} {
		if link.value == "" {
			continue
		}
		if err := validateSocialURL(link.value); err != nil {
			errs = append(errs, ValidationError{
				Field:   link.field,
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		var messages []string
		for _, e := range errs {
			messages = append(messages, e.Error())
		}
		return Brief{}, fmt.Errorf("invalid brief:\n%s", strings.Join(messages, "\n"))
	}

	return b, nil
}

// validateSocialURL accepts absolute http(s) URLs only.
func validateSocialURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%q is not a valid URL", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must use the http or https scheme", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q is missing a host", raw)
	}
	return nil
}
