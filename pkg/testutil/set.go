package testutil

// Set replaces *p with v until c is cleaned up. It is used to swap package
// variables in tests, like exec's osPipe or the markers of diag.
func Set[T any](c Cleanuper, p *T, v T) {
	saved := *p
	*p = v
	c.Cleanup(func() { *p = saved })
}
