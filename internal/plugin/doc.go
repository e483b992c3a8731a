// Package plugin provides the filesystem-capable plugin and
// additional-rule loaders.
//
// The engine's base loaders accept only in-memory values: initializer
// functions for plugins, rule instances for additional rules. The loaders
// here additionally accept environment-specific locators, resolved
// through Lua: a plugin locator names a Lua script returning an
// initializer function, and an additional-rule reference may be a glob
// pattern expanding to Lua rule files. Anything that is not a string
// falls through to the base behavior.
package plugin
