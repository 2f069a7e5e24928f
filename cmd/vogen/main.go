// Command vogen generates Go value types from declaration files.
//
//	vogen generate ./types
//	vogen watch ./types --cache-dir .vogen
//	vogen features
//
// Settings are read from flags, VOGEN_* environment variables and a
// vogen.yaml file in the working directory, in that order of precedence.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
