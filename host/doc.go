// Package host provides the platform collaborators of the machine: an
// ebiten window that presents frames and captures keys, an oto beeper,
// and a terminal frontend on golang.org/x/term.
//
// Build with the headless tag to replace the window and beeper with
// stubs that need no graphics or audio libraries.
package host
