// Package main is the fileverify CLI entrypoint.
package main

import (
	"os"

	"fileverify/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run(os.Args[1:]))
}
