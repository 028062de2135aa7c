package main

import (
	"os"

	"github.com/loom-arch/loom/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
