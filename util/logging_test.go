package util

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogF(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(log.New(&buf, "", 0))
	defer SetOutput(log.Default())

	LoggingEnabled = false
	LogF("hidden %d", 1)
	assert.Empty(t, buf.String())

	LoggingEnabled = true
	defer func() { LoggingEnabled = false }()
	LogF("shown %d", 2)
	assert.Equal(t, "shown 2\n", buf.String())
}
