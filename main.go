package main

import (
	"os"

	"github.com/prestigia-agency/contact/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
