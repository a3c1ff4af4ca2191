// SPDX-License-Identifier: EPL-2.0

// Command audmix plays, mixes and renders audio files through the audmix
// engine.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
