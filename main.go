package main

import (
	"log"

	"voice-assistant/internal/config"
	"voice-assistant/internal/server"
)

func main() {
	if err := server.Run(config.VariantVidya); err != nil {
		log.Fatalf("vidya: %s", err)
	}
}
