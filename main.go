package main

import (
	"os"

	"github.com/alloftech/chatmark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
