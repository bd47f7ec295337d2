// Package main is the entry point for the deptherapist CLI application.
//
// The tool reads package.json in the current directory, asks the package
// manager about installed and outdated packages, and prints a diagnosis.
package main

import "github.com/ajxudir/deptherapist/cmd"

// main delegates all command parsing and execution to the cmd package.
func main() {
	cmd.Execute()
}
