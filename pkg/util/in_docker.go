package util

import "os"

// IsRunningInDocker reports whether the process sees the marker file docker
// puts in every container
func IsRunningInDocker() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}
