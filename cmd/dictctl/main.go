// Command dictctl administers the dictionary tables directly: bulk import,
// manual rotation of the definition of the day, and lookups.
package main

import (
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
