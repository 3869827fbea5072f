//go:build console

package main

import "fmt"

// runEmbeddedUI is a stub for console-only builds
func runEmbeddedUI(session *Session) error {
	return fmt.Errorf("embedded UI not available in console build. Use the web command for external browser mode")
}

// runGUI is a stub for console-only builds
func runGUI(session *Session) error {
	return fmt.Errorf("GUI not available in console build. Use the interactive command instead")
}
