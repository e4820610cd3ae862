// Entry point for the notebook CLI; command wiring lives in root.go.

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
