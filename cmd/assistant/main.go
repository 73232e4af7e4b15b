package main

import (
	"log"

	"voice-assistant/internal/config"
	"voice-assistant/internal/server"
)

func main() {
	if err := server.Run(config.VariantAssistant); err != nil {
		log.Fatalf("assistant: %s", err)
	}
}
