//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package diagnostics

func isTerminal(fd uintptr) bool {
	return false
}
