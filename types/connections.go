package types

import "github.com/tomyedwab/conndesk/state"

// Request and response bodies of the connection commands. Field names follow
// the argument names the desktop front-end invokes the commands with.

type CreateConnectionRequest struct {
	URI   string `json:"uri"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CreateConnectionResponse struct {
	ID int64 `json:"id"`
}

type ConnectionIDRequest struct {
	ID int64 `json:"id"`
}

type UpdateConnectionRequest struct {
	Entity state.Connection `json:"entity"`
}

type EmptyResponse struct{}

type StatusResponse struct {
	Version string `json:"version"`
}
