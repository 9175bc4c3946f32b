package version

import "testing"

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := GetVersion(); got != "v1.2.3" {
		t.Errorf("GetVersion() = %q, want v1.2.3", got)
	}
	if got := UserAgent(); got != "beejlander/v1.2.3" {
		t.Errorf("UserAgent() = %q, want beejlander/v1.2.3", got)
	}
}
