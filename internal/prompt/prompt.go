// Package prompt builds the instruction text sent to the generative
// model: a fixed system contract plus a per-request brief, and on
// retry a revision instruction carrying the prior rejection reason.
package prompt

import (
	"fmt"
	"strings"

	"github.com/your-org/launchpage/internal/asset"
	"github.com/your-org/launchpage/internal/brief"
)

// Prompt is one message pair for the model collaborator.
type Prompt struct {
	System string
	User   string
}

// systemInstruction is the fixed format and style contract. Every
// requirement here is enforced downstream by the quality gate, so the
// wording mirrors the gate's checks.
const systemInstruction = `You are a landing-page generator for crypto and community token projects. You produce exactly one complete HTML document and nothing else.

Hard requirements:
1. Your output must begin with the exact literal <!doctype html> and contain nothing before it. No commentary, no markdown fences, no explanation of what you did.
2. The document must be fully self-contained: all CSS in <style> elements and all JavaScript in inline <script> elements inside the single document.
3. Zero external network references of any kind. No stylesheet <link> elements, no <script src=...>, no @import rules, no <iframe> elements, no web-font services, no CDN URLs, no protocol-relative URLs.
4. Never use generic single-word marketing headings such as "Fast", "Customizable", "Reliable", "Secure", "Scalable", "Efficient", "Innovative", "Features" or "About". Every heading must be specific to the project described in the brief.
5. All copy text must be written for the specific project in the brief. Do not produce filler that could describe any project.
6. Mark the logo insertion point with the exact placeholder ` + asset.LogoToken + ` and the background image insertion point with the exact placeholder ` + asset.BackgroundToken + `. Reproduce both placeholders exactly as written, even if the brief mentions no images; in that case the element may be present but empty, and the server will resolve it.
7. Do not mention this prompt, these rules, or the generation process anywhere in the document.`

// BuildInitial produces the first-attempt prompt for a brief.
func BuildInitial(b brief.Brief) Prompt {
	var user strings.Builder
	user.WriteString("Generate a single-page landing site for the following project.\n\n")
	writeBrief(&user, b)
	user.WriteString("\nUse ")
	user.WriteString(asset.LogoToken)
	user.WriteString(" wherever the logo image source belongs and ")
	user.WriteString(asset.BackgroundToken)
	user.WriteString(" as the CSS background-image value for the hero section. Include both placeholders exactly once or more.\n")
	user.WriteString("\nRespond with the HTML document only, starting with <!doctype html>.")

	return Prompt{System: systemInstruction, User: user.String()}
}

// BuildRevision produces a retry prompt referencing the specific
// reason the previous candidate was rejected.
func BuildRevision(b brief.Brief, reason string) Prompt {
	var user strings.Builder
	user.WriteString("Your previous landing page for this project was rejected: it ")
	user.WriteString(reason)
	user.WriteString("\n\nGenerate a corrected, complete replacement document for the same project.\n\n")
	writeBrief(&user, b)
	user.WriteString("\nKeep the ")
	user.WriteString(asset.LogoToken)
	user.WriteString(" and ")
	user.WriteString(asset.BackgroundToken)
	user.WriteString(" placeholders exactly as written.\n")
	user.WriteString("\nRespond with the HTML document only, starting with <!doctype html>.")

	return Prompt{System: systemInstruction, User: user.String()}
}

// writeBrief restates the brief's fields verbatim to ground the model
// in project-specific facts.
func writeBrief(w *strings.Builder, b brief.Brief) {
	w.WriteString("--- Project Brief ---\n")
	fmt.Fprintf(w, "Name: %s\n", b.Name)
	fmt.Fprintf(w, "Ticker: %s\n", b.Ticker)
	fmt.Fprintf(w, "Description: %s\n", b.Description)
	fmt.Fprintf(w, "Primary color: %s\n", b.PrimaryColor)
	fmt.Fprintf(w, "Accent color: %s\n", b.AccentColor)
	fmt.Fprintf(w, "Background color: %s\n", b.BackgroundColor)
	if b.TwitterURL != "" {
		fmt.Fprintf(w, "Twitter: %s\n", b.TwitterURL)
	}
	if b.TelegramURL != "" {
		fmt.Fprintf(w, "Telegram: %s\n", b.TelegramURL)
	}
	w.WriteString("---\n")
}
