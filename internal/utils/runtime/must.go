package runtime

// Must panics if err is non-nil. Only use it during startup.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
