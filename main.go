package main

import (
	"os"

	"github.com/GintasS/social-media-post-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
