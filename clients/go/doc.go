// Package conndeskgo provides a Go client for the conndesk connection API.
//
// The desktop front-end talks to the same loopback API; this package exists
// for the command line tool and for tests that drive a running backend.
//
// # Basic Usage
//
//	client := conndeskgo.NewClient("http://127.0.0.1:8765")
//
//	id, err := client.CreateConnection(ctx, "mongodb://localhost:27017", "local", "#22c55e")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	conn, err := client.GetConnection(ctx, id)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if conn == nil {
//		log.Println("connection was deleted")
//	}
//
// # Error Handling
//
// Errors returned by the server are mapped back to typed errors, so callers
// can branch on the kind instead of parsing text:
//
//	if err := client.UpdateConnection(ctx, conn); conndeskgo.IsNotFoundError(err) {
//		// the connection was removed by someone else
//	}
package conndeskgo
