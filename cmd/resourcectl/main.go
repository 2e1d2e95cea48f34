package main

import (
	"os"

	"github.com/yigit/resourcehub/internal/resourcectl"
)

func main() {
	err := resourcectl.NewApp(os.Stdout).Run(os.Args)
	os.Exit(resourcectl.ExitCode(os.Stderr, err))
}
