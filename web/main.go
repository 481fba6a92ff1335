package main

import (
	"flag"
	"os"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	// Parse command line flags
	addr := flag.String("addr", "localhost:8080", "Address to serve on")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.Info)
	}
	logger := log.New("web")

	// Create and start web server
	webServer := server.New(logger, server.DefaultLimits())
	logger.Noticef("Path tracer web server, try POST http://%s/api/render", *addr)

	if err := webServer.Start(*addr); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
