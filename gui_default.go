//go:build !console

package main

import (
	"fmt"

	webview "github.com/webview/webview_go"
)

// runEmbeddedUI starts the web server for session and opens an embedded browser window
func runEmbeddedUI(session *Session) error {
	ws := NewWebServer(session, "localhost:0")

	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer cleanup()

	// Create webview window (false = no debug mode)
	w := webview.New(false)
	defer w.Destroy()

	SetWindowIcon(w.Window())
	w.SetTitle("Simple Path Calculator")
	w.SetSize(900, 900, webview.HintNone)
	w.Navigate(url)

	// Run blocks until window is closed
	w.Run()

	return nil
}

// runGUI starts the graphical user interface (uses embedded browser)
func runGUI(session *Session) error {
	return runEmbeddedUI(session)
}
