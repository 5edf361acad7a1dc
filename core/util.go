package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DateFormat is the calendar-day format used across collections
// (attendance dates, joining dates, due dates).
const DateFormat = "2006-01-02"

// MonthFormat is the fee-period format.
const MonthFormat = "2006-01"

// NowFunc returns the current time; a variable so tests can freeze it.
var NowFunc = time.Now

// Today returns the current calendar day formatted as DateFormat.
func Today() string {
	return NowFunc().UTC().Format(DateFormat)
}

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Getwd walks up from the working directory until it finds the module
// root (the directory holding go.mod).
// go-test changes the working directory to the test package being run;
// config and asset lookups must not depend on where a test runs from.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd // fall back to the working directory
		}
		currDir = newDir
	}
}
