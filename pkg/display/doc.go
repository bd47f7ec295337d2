// Package display renders a diagnostics session as human-readable text.
//
// Every line a session prints goes through a Printer: the banner, the
// dependency counts, one line before each check, and the diagnosis with its
// numbered issues and prescription. Headings are coloured with fatih/color,
// which turns colour off by itself when stdout is not a terminal or NO_COLOR
// is set.
package display
