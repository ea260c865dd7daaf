// Command waypoints runs the headless waypoint demo and reports whether every
// ownership handle was released at shutdown.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "waypoints: %s\n", err)
		os.Exit(1)
	}
}
