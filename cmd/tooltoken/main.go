// Command tooltoken prints a bearer token for the operator tools API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"voice-assistant/internal/auth/processor"
	"voice-assistant/internal/observability"

	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("sub", "operator", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
	secret := os.Getenv("TOOLS_JWT_SECRET")

	logger := observability.NewLogger()
	token, err := processor.New(secret, logger).GenerateToken(context.Background(), *subject, *ttl)
	if err != nil {
		log.Fatalf("tooltoken: %s", err)
	}
	fmt.Println(token)
}
