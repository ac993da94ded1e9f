package domain

import "strings"

// OutputFlag is the flag the external program reads its output path from.
const OutputFlag = "--saida"

// Invocation is a fully resolved external program call.
type Invocation struct {
	Program string
	// Args holds the subcommand and positional arguments, codes last.
	Args []string
	// OutputPath is empty when the kind writes no file.
	OutputPath string
}

// Argv returns the arguments passed to the process, with the output flag
// appended after the positional codes.
func (i Invocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+2)
	argv = append(argv, i.Args...)
	if i.OutputPath != "" {
		argv = append(argv, OutputFlag, i.OutputPath)
	}
	return argv
}

// String renders the command line for log output.
func (i Invocation) String() string {
	parts := append([]string{i.Program}, i.Argv()...)
	return strings.Join(parts, " ")
}
