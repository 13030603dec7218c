package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tomyedwab/conndesk/database"
	"github.com/tomyedwab/conndesk/httputils"
	"github.com/tomyedwab/conndesk/middleware"
	"github.com/tomyedwab/conndesk/state"
	"github.com/tomyedwab/conndesk/types"
)

// Handlers adapts the connection commands to HTTP. Each handler decodes its
// arguments, makes exactly one call into Connections and renders the result.
type Handlers struct {
	conns   *state.Connections
	version string
}

func NewHandlers(conns *state.Connections, version string) *Handlers {
	return &Handlers{
		conns:   conns,
		version: version,
	}
}

// Register adds the command routes to router.
func (h *Handlers) Register(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", h.HandleStatus).Methods(http.MethodGet)
	api.HandleFunc("/create_connection", h.HandleCreateConnection).Methods(http.MethodPost)
	api.HandleFunc("/get_connection", h.HandleGetConnection).Methods(http.MethodPost)
	api.HandleFunc("/update_connection", h.HandleUpdateConnection).Methods(http.MethodPost)
	api.HandleFunc("/delete_connection", h.HandleDeleteConnection).Methods(http.MethodPost)
	api.HandleFunc("/list_connection", h.HandleListConnection).Methods(http.MethodPost)
}

// maxRequestBytes caps the size of a command's JSON body.
const maxRequestBytes = 1 << 20

// decodeRequest reads a JSON body into dst. An empty body leaves dst at its
// zero value when allowEmpty is set.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(dst)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return database.NewValidationError(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	}
	if errors.Is(err, io.EOF) {
		if allowEmpty {
			return nil
		}
		return database.NewValidationError("missing request body")
	}
	if err != nil {
		return database.NewValidationError(fmt.Sprintf("error parsing request: %v", err))
	}
	return nil
}

func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httputils.HandleAPIResponse(w, r, types.StatusResponse{Version: h.version}, nil)
}

func (h *Handlers) HandleCreateConnection(w http.ResponseWriter, r *http.Request) {
	var request types.CreateConnectionRequest
	if err := decodeRequest(w, r, &request, false); err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}

	id, err := h.conns.CreateConnection(request.URI, request.Name, request.Color)
	if err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}
	middleware.Logger(r.Context()).Info("Created connection", "id", id)
	httputils.HandleAPIResponse(w, r, types.CreateConnectionResponse{ID: id}, nil)
}

// HandleGetConnection responds with the connection or a JSON null when it
// does not exist.
func (h *Handlers) HandleGetConnection(w http.ResponseWriter, r *http.Request) {
	var request types.ConnectionIDRequest
	if err := decodeRequest(w, r, &request, false); err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}

	conn, err := h.conns.GetConnection(request.ID)
	httputils.HandleAPIResponse(w, r, conn, err)
}

func (h *Handlers) HandleUpdateConnection(w http.ResponseWriter, r *http.Request) {
	var request types.UpdateConnectionRequest
	if err := decodeRequest(w, r, &request, false); err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}

	if err := h.conns.UpdateConnection(request.Entity); err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}
	middleware.Logger(r.Context()).Info("Updated connection", "id", request.Entity.ID)
	httputils.HandleAPIResponse(w, r, types.EmptyResponse{}, nil)
}

func (h *Handlers) HandleDeleteConnection(w http.ResponseWriter, r *http.Request) {
	var request types.ConnectionIDRequest
	if err := decodeRequest(w, r, &request, false); err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}

	if err := h.conns.DeleteConnection(request.ID); err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}
	middleware.Logger(r.Context()).Info("Deleted connection", "id", request.ID)
	httputils.HandleAPIResponse(w, r, types.EmptyResponse{}, nil)
}

func (h *Handlers) HandleListConnection(w http.ResponseWriter, r *http.Request) {
	var request types.EmptyResponse
	if err := decodeRequest(w, r, &request, true); err != nil {
		httputils.HandleAPIResponse(w, r, nil, err)
		return
	}

	conns, err := h.conns.ListConnections()
	httputils.HandleAPIResponse(w, r, conns, err)
}
