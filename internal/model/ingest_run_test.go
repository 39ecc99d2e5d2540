package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngestRun_URLs(t *testing.T) {
	var run IngestRun
	assert.Nil(t, run.URLList())

	run.SetURLs(nil)
	assert.Equal(t, "[]", run.URLs)
	assert.Empty(t, run.URLList())

	run.SetURLs([]string{"https://a.test", "https://b.test"})
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, run.URLList())

	run.URLs = "not json"
	assert.Nil(t, run.URLList())
}
