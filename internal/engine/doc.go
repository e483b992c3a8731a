// Package engine implements the configuration-resolution engine.
//
// An Engine owns the rule and preset registries and turns a raw
// configuration map into a set of configured rules plus the auxiliary
// file-extension and exclude lists. Resolution reconciles three sources:
// directly specified rule settings, a named preset (recursively expanded,
// outer keys winning), and dynamically loaded plugins and additional
// rules.
//
// Five configuration keys are reserved and never name rules: plugins,
// preset, excludeFiles, additionalRules and fileExtensions. Every other
// key is a candidate rule option name.
//
// The engine is a one-shot startup object: Load runs synchronously on the
// caller's goroutine and an engine instance is not meant to be shared
// across concurrent loads.
package engine
