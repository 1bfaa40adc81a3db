// Package cloudtree implements a platform-agnostic command framework: a
// trie of registered commands, a typed argument parser pipeline, an
// asynchronous execution coordinator, a completion-suggestion engine, a
// typed exception controller, and a composable permission model.
//
// The package does not implement transport, persistence, thread spawning,
// or rendering. A platform adapter (chat bot, proxy server, console)
// converts its native commands and senders into the types here and calls
// ExecutionCoordinator.Execute / CommandManager.Suggest.
package cloudtree
