// Package builtin holds the built-in rule catalog. The rules here are
// deliberately simple, line-oriented checks; they exist so a default
// engine has a working catalog and so presets have something to name.
package builtin
