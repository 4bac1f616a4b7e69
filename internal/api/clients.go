package api

import (
	"net/http" // HTTP status codes
	"strings"  // Input trimming

	"vet_clinic/internal/domain"   // Entity model
	"vet_clinic/internal/response" // Envelope helpers
	"vet_clinic/internal/store"    // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CreateClientRequest is the body of POST /clients
type CreateClientRequest struct {
	Name       string  `json:"name" binding:"required,notblank"`
	Email      string  `json:"email" binding:"omitempty,email,max=120"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	NationalID *string `json:"dni"`
	Notes      *string `json:"notes"`
}

func clientView(cl *domain.Client) domain.ClientView { return cl.View() }

// ListClientsHandler lists every client
func ListClientsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		clients, err := s.ListClients(c.Request.Context())
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Clients retrieved", views(clients, clientView))
	}
}

// GetClientHandler fetches one client
func GetClientHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		client, err := s.GetClient(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Client not found")
			return
		}
		response.OK(c, http.StatusOK, "Client retrieved", client.View())
	}
}

// CreateClientHandler registers a client
func CreateClientHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateClientRequest
		if !bindJSON(c, &req) {
			return
		}
		client, err := s.CreateClient(c.Request.Context(), store.NewClient{
			Name:       strings.TrimSpace(req.Name),
			Email:      blankToNil(&req.Email),
			Phone:      blankToNil(req.Phone),
			Address:    blankToNil(req.Address),
			NationalID: blankToNil(req.NationalID),
			Notes:      blankToNil(req.Notes),
		})
		if err != nil {
			respondError(c, err, "")
			return
		}
		logrus.WithField("client_id", client.ID).Info("Client created")
		response.OK(c, http.StatusCreated, "Client created", client.View())
	}
}
