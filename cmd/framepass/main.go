package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"framepass/internal/status"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "framepass:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an outcome onto the process status. Errors that carry no
// outcome marker exit 1.
func exitCode(err error) int {
	switch status.CodeOf(err) {
	case status.CodeSuccess:
		return 0
	case status.CodeInvalidArgument:
		return 2
	case status.CodeResourceExhausted:
		return 3
	case status.CodeUnimplemented:
		return 4
	case status.CodeInternalInconsistency:
		return 5
	default:
		return 1
	}
}
