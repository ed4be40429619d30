package util

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
)

var LoggingEnabled = false

// LogEndpoint, when set, receives a copy of every message as a text/plain POST.
var LogEndpoint = ""

var (
	loggerMu sync.Mutex
	logger   = log.New(os.Stderr, "", log.LstdFlags)
)

// SetOutput redirects debug logging. The language server talks over stdout
// so its logs must never go there.
func SetOutput(l *log.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	message := fmt.Sprintf(format, args...)

	loggerMu.Lock()
	logger.Println(message)
	loggerMu.Unlock()

	if LogEndpoint != "" {
		go http.Post(LogEndpoint, "text/plain", strings.NewReader(message))
	}
}
