package ui

import (
	"os"
	"os/exec"
	"strings"
)

const appName = "ipmi2go"

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogInfo  = "dialog-information"
	IconDialogWarn  = "dialog-warning"

	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"
)

// exit is swapped in tests
var exit = os.Exit

func NotifyInfo(title, text string) {
	NotifySend(UrgencyLow, title, text, IconDialogInfo)
}

func NotifyWarn(title, text string) {
	NotifySend(UrgencyNormal, title, text, IconDialogWarn)
}

func NotifyError(title, text string) {
	NotifySend(UrgencyCritical, title, text, IconDialogError)
}

// NotifySend delivers a desktop notification to the user owning the current X display.
// Headless servers usually have no display, in which case this only logs a debug message.
func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Cannot send notification, missing env variable 'DISPLAY'")
		return
	}

	user, err := findDisplayUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	output, err := exec.Command("id", "-u", user).Output()
	userId := strings.TrimSpace(string(output))
	if err != nil || len(userId) <= 0 {
		Warning("Cannot send notification, unable to detect user id of %s: %v", user, err)
		return
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userId+"/bus",
		"notify-send",
		"-a", appName,
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	if err := cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

func findDisplayUser(display string) (string, error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", err
	}
	return parseDisplayUser(string(output), display)
}

// parseDisplayUser extracts the login name owning the given display from the output of "who"
func parseDisplayUser(whoOutput string, display string) (string, error) {
	for _, line := range strings.Split(whoOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0], nil
		}
	}
	return "", &noDisplayUserError{display: display}
}

type noDisplayUserError struct {
	display string
}

func (e *noDisplayUserError) Error() string {
	return "unable to detect user of display session " + e.display
}
