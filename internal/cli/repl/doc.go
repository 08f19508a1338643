// Package repl provides the interactive shell of the snapkeep CLI.
//
// Each input line is split into arguments and handed to an Executor, so the
// shell runs the same commands as single-command mode against one opened
// store. Lines are kept in a History persisted between sessions; unknown
// commands are answered with suggestions from a Completer.
package repl
