package main

import (
	"os"

	"github.com/saltfishpr/retrier/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
