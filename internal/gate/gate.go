// Package gate decides whether a candidate document is acceptable.
// Checks run in a fixed order and the gate stops at the first failure
// so exactly one reason feeds the next revision prompt.
package gate

import (
	"regexp"
	"strings"

	"github.com/your-org/launchpage/internal/asset"
)

// Rejection reasons. These strings go verbatim into revision prompts.
const (
	ReasonDoctype     = "must start with the doctype declaration."
	ReasonExternal    = "contains external resource references."
	ReasonHeading     = "uses a generic/banned heading."
	ReasonPlaceholder = "missing required asset placeholder tokens."
)

var (
	doctypeAtStart = regexp.MustCompile(`(?i)^<!doctype html>`)

	stylesheetLink = regexp.MustCompile(`(?is)<link[^>]+rel\s*=\s*["']?stylesheet`)
	scriptWithSrc  = regexp.MustCompile(`(?is)<script[^>]+src\s*=`)
	importRule     = regexp.MustCompile(`(?i)@import\b`)
	iframeElement  = regexp.MustCompile(`(?i)<iframe\b`)

	headingElement = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]\s*>`)
	innerTag       = regexp.MustCompile(`(?s)<[^>]*>`)
)

// externalHostPatterns are substrings whose presence marks a document
// as depending on the network: web-font services, generic CDNs, and
// package CDNs.
var externalHostPatterns = []string{
	"fonts.googleapis.com",
	"fonts.gstatic.com",
	"use.typekit.net",
	"cdn.jsdelivr.net",
	"cdnjs.cloudflare.com",
	"unpkg.com",
	"bootstrapcdn.com",
	"googletagmanager.com",
	"//cdn.",
}

// bannedHeadings are generic marketing headings the copy must avoid.
// Matching is case-insensitive against the heading's full inner text.
var bannedHeadings = map[string]bool{
	"fast":         true,
	"customizable": true,
	"reliable":     true,
	"secure":       true,
	"scalable":     true,
	"efficient":    true,
	"innovative":   true,
	"easy to use":  true,
	"features":     true,
	"about":        true,
}

// Result is the outcome of evaluating one candidate.
type Result struct {
	Passed bool
	Reason string
}

// Evaluate runs all four checks in order, short-circuiting on the
// first failure.
func Evaluate(candidate string) Result {
	checks := []func(string) (bool, string){
		checkDoctype,
		checkExternalResources,
		checkHeadings,
		checkPlaceholders,
	}

	for _, check := range checks {
		if ok, reason := check(candidate); !ok {
			return Result{Passed: false, Reason: reason}
		}
	}
	return Result{Passed: true}
}

// CheckStructure runs only the structural subset (doctype and external
// references), used for the final re-check after asset injection.
func CheckStructure(candidate string) Result {
	for _, check := range []func(string) (bool, string){checkDoctype, checkExternalResources} {
		if ok, reason := check(candidate); !ok {
			return Result{Passed: false, Reason: reason}
		}
	}
	return Result{Passed: true}
}

func checkDoctype(candidate string) (bool, string) {
	if !doctypeAtStart.MatchString(strings.TrimSpace(candidate)) {
		return false, ReasonDoctype
	}
	return true, ""
}

func checkExternalResources(candidate string) (bool, string) {
	lower := strings.ToLower(candidate)
	for _, host := range externalHostPatterns {
		if strings.Contains(lower, host) {
			return false, ReasonExternal
		}
	}

	for _, pattern := range []*regexp.Regexp{stylesheetLink, scriptWithSrc, importRule, iframeElement} {
		if pattern.MatchString(candidate) {
			return false, ReasonExternal
		}
	}
	return true, ""
}

func checkHeadings(candidate string) (bool, string) {
	for _, match := range headingElement.FindAllStringSubmatch(candidate, -1) {
		text := innerTag.ReplaceAllString(match[1], "")
		text = strings.ToLower(strings.TrimSpace(text))
		if bannedHeadings[text] {
			return false, ReasonHeading
		}
	}
	return true, ""
}

func checkPlaceholders(candidate string) (bool, string) {
	if !asset.ContainsToken(candidate) {
		return false, ReasonPlaceholder
	}
	return true, ""
}
