// Package cli provides the interactive GophVault command-line client.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Commands operate on the whole vault: every change retrieves the vault,
// edits it locally and stores it back under the master password, which is
// prompted per call and wiped right after use.
package cli
