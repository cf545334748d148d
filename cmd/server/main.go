// Package main is the entry point for the dx7syx API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/james-see/dx7syx/pkg/api"
	"github.com/james-see/dx7syx/pkg/dx7"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	channel := flag.Int("channel", 1, "MIDI channel (1-16) for generated dumps")
	flag.Parse()

	ch, err := dx7.NewChannel(*channel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid channel: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Starting dx7syx API server on port %d...\n", *port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", *port)

	if err := api.StartServer(*port, ch); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
