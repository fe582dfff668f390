// cmd/mathgen-server/main.go: HTTP server for mathgen tools and problems
//
// Usage:
//
//	go run ./cmd/mathgen-server -config mathgen.yaml -port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Random problem:     GET  /rand-problem?level=1
// Stored problem:     GET  /problem/{id}
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/njchilds90/gomathgen"
	"github.com/njchilds90/gomathgen/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to mathgen.yaml")
	port := flag.Int("port", 0, "Port to listen on (overrides config)")
	flag.Parse()

	log.SetPrefix("mathgen-server: ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := mathgen.NewGenerator(rand.New(rand.NewSource(seed)), cfg.Generator.Limits())
	srv := newServer(cfg, gen)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s (seed %d)", addr, seed)
	log.Printf("  POST /tool         : execute a tool call")
	log.Printf("  GET  /schema       : tool schema")
	log.Printf("  GET  /health       : health check")
	log.Printf("  GET  /rand-problem : generate a problem (?level=1|2)")
	log.Printf("  GET  /problem/{id} : fetch a generated problem")

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
