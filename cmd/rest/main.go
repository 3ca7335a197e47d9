package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/scholarsknowledge/server/pkg/api/rest"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/networks"
	"github.com/scholarsknowledge/server/pkg/rdb"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/users"
)

func main() {
	// Load dotenv
	godotenv.Load()

	// Init Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn: os.Getenv("SENTRY_DSN"),
	}); err != nil {
		panic(err)
	}

	// Init ScholID
	if err := scholid.Init(os.Getenv("NODE_ID")); err != nil {
		panic(err)
	}

	// Init MongoDB
	if err := db.Init(os.Getenv("MONGO_URI"), os.Getenv("MONGO_DB")); err != nil {
		panic(err)
	}

	// Init Redis
	if err := rdb.Init(os.Getenv("REDIS_URL")); err != nil {
		panic(err)
	}

	// Init token signing keys
	if err := users.InitTokenSigningKeys(); err != nil {
		panic(err)
	}

	// Load netblocks
	if err := networks.Init(); err != nil {
		panic(err)
	}

	// Serve HTTP router
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "3000"
	}
	log.Println("Serving HTTP server on :" + port)
	http.ListenAndServe(":"+port, rest.Router())

	// Wait for Sentry events to flush
	sentry.Flush(time.Second * 5)
}
