// Package app wires the dynmsg library into the command line tool. It loads
// the descriptor set, reads input documents in the configured format, decodes
// them into dynamic messages and prints the result.
package app
