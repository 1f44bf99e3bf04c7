// Package cli provides the interactive eventboard command-line client.
//
// It prompts for credentials (passwords are read without echo), keeps the
// access token for the lifetime of the process and shows the identity the
// server resolves from it. The REPL is started via App.Run(ctx).
package cli
