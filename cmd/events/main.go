package main

import (
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/scholarsknowledge/server/pkg/api/events"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/users"
)

func main() {
	// Load dotenv
	godotenv.Load()

	// Init Sentry
	sentry.Init(sentry.ClientOptions{
		Dsn: os.Getenv("EVENTS_SENTRY_DSN"),
	})

	// Init MongoDB, the gateway resolves session tokens itself
	if err := db.Init(os.Getenv("MONGO_URI"), os.Getenv("MONGO_DB")); err != nil {
		panic(err)
	}

	// Init token signing keys
	if err := users.InitTokenSigningKeys(); err != nil {
		panic(err)
	}

	// Get expose address
	exposeAddr := os.Getenv("EVENTS_ADDRESS")
	if exposeAddr == "" {
		exposeAddr = ":3001"
	}

	// Create & run server
	server := events.NewServer()
	if err := server.Run(exposeAddr); err != nil {
		log.Fatalln(err)
	}
}
