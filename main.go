package main

import (
	"os"

	"github.com/gridprobe/faceoff/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
