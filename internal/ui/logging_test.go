package ui

import (
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test %d"
	a := 5
	Printfln(msg, a)
	// Output:
	// This is a test 5
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	msg := "This is a test: %d"
	a := 5
	Debug(msg, a)
	// Output:
	// DEBUG: This is a test: 5
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Info("Set fan speed to %s", "0x14")
	// Output:
	// INFO: Set fan speed to 0x14
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Warning(msg, a)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}

func TestParseDisplayUser(t *testing.T) {
	// GIVEN
	who := "root     pts/0        2024-01-01 10:00 (10.0.0.2)\n" +
		"markus   tty7         2024-01-01 09:00 (:0)\n"

	// WHEN
	user, err := parseDisplayUser(who, ":0")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "markus", user)
}

func TestParseDisplayUser_NotFound(t *testing.T) {
	// GIVEN
	who := "root     pts/0        2024-01-01 10:00 (10.0.0.2)\n"

	// WHEN
	_, err := parseDisplayUser(who, ":1")

	// THEN
	assert.EqualError(t, err, "unable to detect user of display session :1")
}
