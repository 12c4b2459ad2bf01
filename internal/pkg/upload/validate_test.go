package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

var pngHead = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func TestValidateImageBySniffAccepted(t *testing.T) {
	mime, err := ValidateImageBySniff("wedding-001.jpg", jpegHead)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	mime, err = ValidateImageBySniff("cover.PNG", pngHead)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestValidateImageBySniffRejectsUnknownExtension(t *testing.T) {
	_, err := ValidateImageBySniff("notes.txt", jpegHead)
	assert.Error(t, err)

	_, err = ValidateImageBySniff("vector.svg", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>"))
	assert.Error(t, err)
}

func TestValidateImageBySniffRejectsScriptableContent(t *testing.T) {
	_, err := ValidateImageBySniff("payload.jpg", []byte("<html><script>alert(1)</script></html>"))
	assert.Error(t, err)
}

func TestValidateImageBySniffAllowsOctetStreamByExtension(t *testing.T) {
	// HEIC from iPhones often sniffs as octet-stream.
	head := make([]byte, 32)
	mime, err := ValidateImageBySniff("IMG_0042.heic", head)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", mime)
}
