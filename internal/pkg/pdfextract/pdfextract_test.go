package pdfextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_Empty(t *testing.T) {
	text, err := ExtractText(nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractText_NotAPDF(t *testing.T) {
	_, err := ExtractText([]byte("<html>definitely not a pdf</html>"))
	assert.Error(t, err)
}
