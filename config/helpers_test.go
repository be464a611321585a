// ABOUTME: Test helpers for config tests
// ABOUTME: Provides environment variable isolation with restore on cleanup

package config

import (
	"os"
	"testing"
)

// withCleanEnv clears the environment and returns a cleanup function that
// restores the original env. Use with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withCleanEnv(t))
//	    // Environment is cleared; set only what the test needs
//	}
func withCleanEnv(t *testing.T) func() {
	t.Helper()

	originalEnv := os.Environ()
	os.Clearenv()

	return func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i := 0; i < len(env); i++ {
				if env[i] == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}
}
