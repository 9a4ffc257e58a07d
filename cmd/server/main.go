package main

import (
	"log"

	"github.com/afrinode-dev/Africlick/internal/app"
)

func main() {
	a := app.NewApp()
	if err := a.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
