package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/vocabshooter/internal/config"
)

func TestRenderPage(t *testing.T) {
	page := renderPage(&config.Settings{
		SSH: config.SSHSettings{Port: "2222"},
		Web: config.WebSettings{DisplayHost: "vocab.example.com"},
	})
	assert.Contains(t, page, "ssh -t -p 2222 vocab.example.com")
	assert.NotContains(t, page, "{{.")
}
