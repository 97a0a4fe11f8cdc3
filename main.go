package main

import (
	"os"

	"github.com/thenoetrevino/sprout/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
