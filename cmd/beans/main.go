// Command beans is the CLI surface over the lifecycle engine: one
// subcommand per transition or query.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/telemetry"
)

func main() {
	shutdown, err := telemetry.Setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "beans: telemetry:", err)
	}
	err = newRootCmd().Execute()
	if shutdown != nil {
		_ = shutdown(context.Background())
	}
	if err != nil {
		if flags.jsonOut {
			data, _ := json.Marshal(map[string]string{"error": err.Error(), "kind": beanerr.Kind(err)})
			fmt.Fprintln(os.Stderr, string(data))
		} else {
			fmt.Fprintln(os.Stderr, "beans:", err)
		}
		os.Exit(exitCodeFor(err))
	}
}
