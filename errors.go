package kli

import "errors"

var (
	// ErrStructure reports a tree mutation that would break the node
	// hierarchy, such as giving a TextContainer a child other than *Text.
	ErrStructure = errors.New("kli: invalid node structure")

	// ErrNoTerminal is returned by OpenTTY when stdin or stdout is not a
	// terminal.
	ErrNoTerminal = errors.New("kli: not a terminal")
)
