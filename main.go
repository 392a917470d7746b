// Package main is the entry point for the csround CLI, which classifies the
// rounds of CS2 replays and writes per-player CSV reports.
package main

import "github.com/pable/csround/cmd"

func main() {
	cmd.Execute()
}
