package main

import (
	"os"

	"finzap/cmd/root"
)

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
