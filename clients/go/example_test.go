package conndeskgo_test

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	conndeskgo "github.com/tomyedwab/conndesk/clients/go"
)

func ExampleNewClient() {
	client := conndeskgo.NewClient("http://127.0.0.1:8765",
		conndeskgo.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
	)

	fmt.Printf("Base URL: %s\n", client.GetBaseURL())
	fmt.Printf("HTTP Timeout: %v\n", client.GetHTTPClient().Timeout)

	// Output:
	// Base URL: http://127.0.0.1:8765
	// HTTP Timeout: 5s
}

func ExampleClient_CreateConnection() {
	client := conndeskgo.NewClient("http://127.0.0.1:8765")
	ctx := context.Background()

	id, err := client.CreateConnection(ctx, "mongodb://localhost:27017", "local", "#22c55e")
	if err != nil {
		log.Fatal(err)
	}

	conn, err := client.GetConnection(ctx, id)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(conn.Name)
}
