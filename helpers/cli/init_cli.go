//go:build !windows

package cli_helpers

// InitCli prepares the terminal for coloured output. Unix terminals need
// nothing.
func InitCli() {}
