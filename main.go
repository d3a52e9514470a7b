package main

import (
	"os"

	"github.com/fortuna-social/settings-service/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
