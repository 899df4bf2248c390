package gate

import (
	"testing"

	"github.com/your-org/launchpage/internal/asset"
)

// compliant is a minimal candidate that passes every check.
const compliant = `<!doctype html>
<html>
<head><style>body{background-image:` + asset.BackgroundToken + `}</style></head>
<body>
<h1>Nova Rewards</h1>
<img src="` + asset.LogoToken + `">
<p>A community-driven rewards token.</p>
</body>
</html>`

func TestEvaluatePassesCompliantDocument(t *testing.T) {
	result := Evaluate(compliant)
	if !result.Passed {
		t.Fatalf("expected compliant document to pass, got reason: %s", result.Reason)
	}
	if result.Reason != "" {
		t.Errorf("expected empty reason on pass, got %q", result.Reason)
	}
}

func TestEvaluateDoctype(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		pass      bool
	}{
		{"lowercase doctype", compliant, true},
		{"uppercase doctype", "<!DOCTYPE HTML>\n<html><h1>Nova</h1><img src=\"" + asset.LogoToken + "\"></html>", true},
		{"missing doctype", "<html><h1>Nova</h1></html>", false},
		{"doctype not at start", "note\n<!doctype html><html></html>", false},
		{"empty candidate", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.candidate)
			if tt.pass && !result.Passed {
				t.Errorf("expected pass, got reason %q", result.Reason)
			}
			if !tt.pass && result.Reason != ReasonDoctype {
				t.Errorf("expected doctype rejection, got passed=%v reason=%q", result.Passed, result.Reason)
			}
		})
	}
}

func TestEvaluateExternalResources(t *testing.T) {
	violations := []struct {
		name    string
		snippet string
	}{
		{"google fonts", `<link href="https://fonts.googleapis.com/css2?family=Inter" rel="preload">`},
		{"protocol-relative cdn", `<img src="//cdn.example.net/x.png">`},
		{"jsdelivr", `<script>fetch("https://cdn.jsdelivr.net/npm/pkg")</script>`},
		{"stylesheet link", `<link rel="stylesheet" href="/style.css">`},
		{"script with src", `<script src="/app.js"></script>`},
		{"import rule", `<style>@import "theme.css";</style>`},
		{"iframe", `<iframe src="/embed"></iframe>`},
	}

	for _, tt := range violations {
		t.Run(tt.name, func(t *testing.T) {
			candidate := "<!doctype html><html><h1>Nova</h1>" + tt.snippet +
				`<img src="` + asset.LogoToken + `"></html>`
			result := Evaluate(candidate)
			if result.Passed {
				t.Fatal("expected rejection, candidate passed")
			}
			if result.Reason != ReasonExternal {
				t.Errorf("expected external-resource rejection, got %q", result.Reason)
			}
		})
	}
}

func TestEvaluateBannedHeadings(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		pass    bool
	}{
		{"banned exact", "<h2>Fast</h2>", false},
		{"banned mixed case", "<h3>CUSTOMIZABLE</h3>", false},
		{"banned with nested tag", "<h2><span>Reliable</span></h2>", false},
		{"banned with surrounding whitespace", "<h2>  Secure  </h2>", false},
		{"specific copy passes", "<h2>Why Nova rewards holders</h2>", true},
		{"banned word inside longer heading passes", "<h2>Fast by design, fair by default</h2>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := "<!doctype html><html><h1>Nova</h1>" + tt.heading +
				`<img src="` + asset.LogoToken + `"></html>`
			result := Evaluate(candidate)
			if tt.pass != result.Passed {
				t.Errorf("passed=%v (reason %q), want passed=%v", result.Passed, result.Reason, tt.pass)
			}
			if !tt.pass && result.Reason != ReasonHeading {
				t.Errorf("expected heading rejection, got %q", result.Reason)
			}
		})
	}
}

func TestEvaluatePlaceholderPresence(t *testing.T) {
	noTokens := "<!doctype html><html><h1>Nova</h1><p>Great token.</p></html>"
	result := Evaluate(noTokens)
	if result.Passed {
		t.Fatal("expected rejection for missing placeholders")
	}
	if result.Reason != ReasonPlaceholder {
		t.Errorf("expected placeholder rejection, got %q", result.Reason)
	}

	// One token is enough to satisfy the presence check.
	oneToken := "<!doctype html><html><h1>Nova</h1><img src=\"" + asset.LogoToken + "\"></html>"
	if result := Evaluate(oneToken); !result.Passed {
		t.Errorf("expected single-token candidate to pass, got reason %q", result.Reason)
	}
}

func TestEvaluateShortCircuitOrder(t *testing.T) {
	// Violates both the doctype check and the external-resource check;
	// only the doctype reason may surface.
	candidate := `<html><script src="https://cdn.jsdelivr.net/x.js"></script></html>`

	result := Evaluate(candidate)
	if result.Passed {
		t.Fatal("expected rejection")
	}
	if result.Reason != ReasonDoctype {
		t.Errorf("expected doctype reason to win, got %q", result.Reason)
	}
}

func TestCheckStructure(t *testing.T) {
	// The structural subset ignores headings and placeholders.
	injected := "<!doctype html><html><h1>Fast</h1><p>no tokens left</p></html>"
	if result := CheckStructure(injected); !result.Passed {
		t.Errorf("expected structural subset to pass, got reason %q", result.Reason)
	}

	external := `<!doctype html><html><link rel="stylesheet" href="x.css"></html>`
	if result := CheckStructure(external); result.Passed {
		t.Error("expected structural subset to reject external references")
	}
}
