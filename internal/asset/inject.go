package asset

import (
	"fmt"
	"strings"
)

const (
	// LogoToken marks where the logo image source belongs in a document.
	LogoToken = "__LOGO_IMAGE__"
	// BackgroundToken marks where the background image value belongs.
	// It stands in the position of a full CSS background-image value.
	BackgroundToken = "__BACKGROUND_IMAGE__"
)

// Inject replaces every occurrence of both placeholder tokens in doc.
//
// The logo token becomes the bare data URI (usable in img src), or the
// empty string when no logo was supplied. The background token becomes
// url("<data-uri>"), or the literal none when no background was
// supplied, so the surrounding CSS stays valid either way.
func Inject(doc, logoAsset, backgroundAsset string) string {
	logoValue := ""
	if logoAsset != "" {
		logoValue = logoAsset
	}

	backgroundValue := "none"
	if backgroundAsset != "" {
		backgroundValue = fmt.Sprintf("url(%q)", backgroundAsset)
	}

	doc = strings.ReplaceAll(doc, LogoToken, logoValue)
	doc = strings.ReplaceAll(doc, BackgroundToken, backgroundValue)
	return doc
}

// ContainsToken reports whether doc still carries either placeholder.
func ContainsToken(doc string) bool {
	return strings.Contains(doc, LogoToken) || strings.Contains(doc, BackgroundToken)
}
