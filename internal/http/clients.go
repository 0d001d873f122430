package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lotworks/opls/internal/service"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/pkg/httpx"
	"github.com/lotworks/opls/pkg/oauthx"
	"github.com/lotworks/opls/pkg/slogx"
)

// ClientsHandler handles the admin client management endpoints.
type ClientsHandler struct {
	Clients *service.ClientService
}

// HandleCreate handles POST /clients
//
//	@Summary		Create API Client
//	@Description	Registers a new API client. The generated secret is returned once and never again.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		oauthx.CreateClientRequest	true	"Client creation request"
//	@Success		201		{object}	oauthx.CreateClientResponse	"client_id and client_secret"
//	@Failure		400		{object}	oauthx.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	oauthx.ErrorResponse		"error, error_description"
//	@Router			/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req oauthx.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	client, secret, err := h.Clients.CreateClient(ctx, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClientName):
			httpx.WriteJSON(w, http.StatusBadRequest, oauthx.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Client name is invalid",
			})
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteJSON(w, http.StatusConflict, oauthx.ErrorResponse{
				Error:            "client_exists",
				ErrorDescription: "A client with that name already exists",
			})
		default:
			log.Error("failed to create client", "error", err)
			oauthx.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, oauthx.CreateClientResponse{
		ClientID:     client.ClientID,
		ClientSecret: secret,
		Name:         client.Name,
	})
}

// HandleList handles GET /clients
//
//	@Summary		List API Clients
//	@Description	Returns all registered API clients without their secrets.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	oauthx.ListClientsResponse	"List of clients"
//	@Failure		401	{object}	oauthx.ErrorResponse		"error, error_description"
//	@Router			/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clients, err := h.Clients.ListClients(ctx)
	if err != nil {
		log.Error("failed to list clients", "error", err)
		oauthx.ErrServerError.WriteError(w)
		return
	}

	infos := make([]oauthx.ClientInfo, len(clients))
	for i, client := range clients {
		infos[i] = oauthx.ClientInfo{
			ClientID:  client.ClientID,
			Name:      client.Name,
			CreatedAt: client.CreatedAt.Format(time.RFC3339),
		}
	}

	httpx.WriteJSON(w, http.StatusOK, oauthx.ListClientsResponse{Clients: infos})
}

// HandleDelete handles DELETE /clients/{client_id}
//
//	@Summary		Delete API Client
//	@Description	Deletes a registered API client and all of its sessions.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			client_id	path	string	true	"Client identifier"
//	@Success		204			"Client deleted"
//	@Failure		404			{object}	oauthx.ErrorResponse	"error, error_description"
//	@Router			/clients/{client_id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clientID := r.PathValue("client_id")
	if err := h.Clients.DeleteClient(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, oauthx.ErrorResponse{
				Error:            "client_not_found",
				ErrorDescription: "Client not found",
			})
			return
		}
		log.Error("failed to delete client", "error", err, "client_id", clientID)
		oauthx.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
