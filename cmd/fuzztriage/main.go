package main

import (
	"fmt"
	"os"

	"github.com/zjy-dev/fuzz-triage/cmd/fuzztriage/app"
)

func main() {
	if err := app.NewFuzzTriageCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
