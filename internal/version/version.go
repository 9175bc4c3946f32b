// Package version provides application version information.
// The version can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/beejlander/internal/version.Version=v1.2.3"
package version

import "fmt"

// Version is the application version. It defaults to "dev" and can be
// overridden at build time using ldflags.
var Version = "dev"

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}

// UserAgent returns the User-Agent sent to Scryfall, which asks clients to
// identify themselves.
func UserAgent() string {
	return fmt.Sprintf("beejlander/%s", Version)
}
