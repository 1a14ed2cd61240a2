// Package misc carries build information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set at build time with -ldflags "-X gsc/misc.version=... -X gsc/misc.gitHash=...".
var (
	version = "dev"
	gitHash = "unknown"
	appName string
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name derived from executable, used for
// temporary and log file names.
func GetAppName() string {
	if appName != "" {
		return appName
	}
	base := filepath.Base(os.Args[0])
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	// go test and go run binaries
	if ext == ".test" || name == "" || name == "." || name == "main" {
		return "gsc"
	}
	return name
}
