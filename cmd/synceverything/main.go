package main

import (
	"fmt"
	"os"

	"github.com/tmchartrand/synceverything/pkg/errors"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
		if errors.IsCancellation(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
