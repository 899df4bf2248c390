// Package fallback renders a deterministic, self-contained landing
// page for a brief. The rendered document always passes the quality
// gate, which is what makes the pipeline's zero-failure guarantee
// possible; that invariant is covered directly by tests.
package fallback

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/your-org/launchpage/internal/brief"
)

// The placeholder tokens appear as literal text in the template so the
// rendered document goes through the same asset injection as a
// model-produced one. They must stay in sync with the asset package.
const documentTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}} ({{.Ticker}})</title>
<style>
:root {
  --primary: {{.PrimaryColor}};
  --accent: {{.AccentColor}};
  --background: {{.BackgroundColor}};
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: system-ui, -apple-system, sans-serif;
  background-color: var(--background);
  color: #f4f4f5;
  min-height: 100vh;
}
.hero {
  display: flex;
  flex-direction: column;
  align-items: center;
  justify-content: center;
  text-align: center;
  min-height: 60vh;
  padding: 4rem 1.5rem 3rem;
  background-image: __BACKGROUND_IMAGE__;
  background-size: cover;
  background-position: center;
}
.hero img {
  width: 120px;
  height: 120px;
  border-radius: 50%;
  object-fit: cover;
  margin-bottom: 1.5rem;
  background: var(--primary);
}
.hero h1 {
  font-size: 3rem;
  color: var(--primary);
  letter-spacing: -0.02em;
}
.hero .ticker {
  font-size: 1.25rem;
  color: var(--accent);
  margin-top: 0.5rem;
  font-weight: 600;
}
main { max-width: 720px; margin: 0 auto; padding: 2rem 1.5rem 4rem; }
section { margin-top: 3rem; }
h2 { color: var(--accent); font-size: 1.5rem; margin-bottom: 1rem; }
p { line-height: 1.7; color: #d4d4d8; }
.links { display: flex; gap: 1rem; margin-top: 1rem; }
.links a {
  color: var(--background);
  background: var(--primary);
  padding: 0.75rem 1.5rem;
  border-radius: 999px;
  text-decoration: none;
  font-weight: 600;
}
.links a:hover { background: var(--accent); }
footer { text-align: center; padding: 2rem; color: #71717a; font-size: 0.875rem; }
</style>
</head>
<body>
<header class="hero">
<img src="__LOGO_IMAGE__" alt="{{.Name}} logo">
<h1>{{.Name}}</h1>
<p class="ticker">{{.Ticker}}</p>
</header>
<main>
<section>
<h2>What is {{.Name}}?</h2>
<p>{{.Description}}</p>
</section>
{{- if or .TwitterURL .TelegramURL}}
<section>
<h2>Join the {{.Ticker}} community</h2>
<div class="links">
{{- if .TwitterURL}}
<a href="{{.TwitterURL}}">Twitter</a>
{{- end}}
{{- if .TelegramURL}}
<a href="{{.TelegramURL}}">Telegram</a>
{{- end}}
</div>
</section>
{{- end}}
</main>
<footer>{{.Name}} · {{.Ticker}}</footer>
</body>
</html>`

var page = template.Must(template.New("fallback").Parse(documentTemplate))

// Render produces the fallback document for a brief. It never calls
// the model; the output is a pure function of the brief.
func Render(b brief.Brief) (string, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, b); err != nil {
		return "", fmt.Errorf("failed to render fallback template: %w", err)
	}
	return buf.String(), nil
}
