package main

import (
	"os"

	"bookmark-backup/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
