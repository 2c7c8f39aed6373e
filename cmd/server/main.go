package main // Entry point package

import (
	"fmt"
	"os"

	"github.com/iliyamo/cinema-scheduler/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
