package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dirx/internal/cli"
	"github.com/arthur-debert/dirx/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r := style.NewRenderer(style.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, r.Error(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
