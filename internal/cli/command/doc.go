// Package command provides the rcli command tree.
//
// It uses urfave/cli/v2 for command parsing. Every command loads the layered
// configuration (defaults, YAML file, RCLI_* environment, flags) before
// calling into the token signer or the content server.
package command
