// Command l14table lays out the tables of an HTML document and renders them
// to PNG or PDF, or dumps their resolved collapsed borders.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"l14tables/pkg/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		observability.Sync()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	observability.Sync()
}
