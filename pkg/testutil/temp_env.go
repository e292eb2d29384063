package testutil

import "os"

// Setenv sets an environment variable until c is cleaned up, and returns
// value. Shell tests use it to point XDG_CONFIG_HOME and XDG_DATA_HOME into a
// temporary directory.
func Setenv(c Cleanuper, name, value string) string {
	SaveEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv removes an environment variable until c is cleaned up.
func Unsetenv(c Cleanuper, name string) {
	SaveEnv(c, name)
	os.Unsetenv(name)
}

// SaveEnv arranges for an environment variable to get back its current state
// when c is cleaned up: the old value if it was set, unset otherwise.
func SaveEnv(c Cleanuper, name string) {
	if old, ok := os.LookupEnv(name); ok {
		c.Cleanup(func() { os.Setenv(name, old) })
		return
	}
	c.Cleanup(func() { os.Unsetenv(name) })
}
