package resolver

import "os"

// osLookupEnv is the default environment lookup, used whenever a Config
// leaves Getenv nil.
func osLookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}
