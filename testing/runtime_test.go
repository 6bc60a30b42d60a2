package testing

import (
	stdtesting "testing"

	"github.com/fundlift/fundlift/internal/app"
)

// The mains consult app.InTestMode before starting any runtime side
// effects; the flag set in TestMain must be what they see.
func TestRuntimeGateHonorsTestMode(t *stdtesting.T) {
	if !app.InTestMode() {
		t.Fatal("test mode flag was not detected")
	}
}

func TestRefreshRereadsEnvironment(t *stdtesting.T) {
	t.Setenv("FUNDLIFT_TEST_MODE", "0")
	app.RefreshTestMode()
	if app.InTestMode() {
		t.Fatal("flag should be off after refresh")
	}

	t.Setenv("FUNDLIFT_TEST_MODE", "1")
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatal("flag should be on after refresh")
	}
}
