// main is the entry point for the ensoview CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/ensoview/cmd"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/internal/sourcedb"
)

func main() {
	code := 0
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		code = 1
	}
	sourcedb.CloseSources()
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Failed to stop profiling", err)
	}
	os.Exit(code)
}
