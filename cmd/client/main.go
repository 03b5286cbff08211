package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arcadebit/tictactoe-server/internal/client"
)

var serverAddr = flag.String("server", "localhost:8002", "Server address (host:port)")

func main() {
	flag.Parse()

	gameClient := client.New(*serverAddr)

	if err := gameClient.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
