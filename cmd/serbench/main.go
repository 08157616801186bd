// Command serbench measures encoding and compression costs of a synthetic catalog and
// serves the encoded payloads over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
