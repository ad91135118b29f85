//go:build !(darwin || linux || freebsd)

package pcre2

import "errors"

func load() error {
	return errors.New("pcre2: backend is not supported on this platform")
}
