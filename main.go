package main

import (
	"log"

	"github.com/Voltarian-Technologies/XDash/launcher"
)

func main() {
	if err := launcher.Run(); err != nil {
		log.Fatalf("xdash: %v", err)
	}
}
