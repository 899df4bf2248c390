package asset

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeDataURI(t *testing.T) {
	uri, err := EncodeDataURI(pngBytes(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.NotContains(t, uri, " ")
}

func TestEncodeDataURIRejectsEmpty(t *testing.T) {
	_, err := EncodeDataURI(nil)
	assert.Error(t, err)
}

func TestEncodeDataURIRejectsNonImage(t *testing.T) {
	_, err := EncodeDataURI([]byte("<html>not an image</html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")
}

func TestEncodeDataURIRejectsOversized(t *testing.T) {
	data := make([]byte, MaxEncodedBytes+1)
	_, err := EncodeDataURI(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum size")
}

func TestInjectReplacesEveryOccurrence(t *testing.T) {
	doc := `<img src="` + LogoToken + `"><footer><img src="` + LogoToken + `"></footer>` +
		`<style>body{background-image:` + BackgroundToken + `}</style>`

	out := Inject(doc, "data:image/png;base64,AAAA", "")

	assert.False(t, ContainsToken(out))
	assert.Equal(t, 2, strings.Count(out, "data:image/png;base64,AAAA"))
	assert.Contains(t, out, "background-image:none")
}

func TestInjectMissingLogoResolvesToEmptyString(t *testing.T) {
	doc := `<img src="` + LogoToken + `">`

	out := Inject(doc, "", "")

	assert.Equal(t, `<img src="">`, out)
}

func TestInjectBackgroundWrappedAsCSSURL(t *testing.T) {
	doc := `background-image: ` + BackgroundToken + `;`

	out := Inject(doc, "", "data:image/jpeg;base64,BBBB")

	assert.Equal(t, `background-image: url("data:image/jpeg;base64,BBBB");`, out)
	assert.False(t, ContainsToken(out))
}

func TestContainsToken(t *testing.T) {
	assert.True(t, ContainsToken("before "+LogoToken+" after"))
	assert.True(t, ContainsToken(BackgroundToken))
	assert.False(t, ContainsToken("no tokens here"))
}
