package main

import (
	"os"

	"github.com/Devon-White/aria2-options/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
