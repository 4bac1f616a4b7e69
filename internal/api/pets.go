package api

import (
	"errors"   // Joined field checks
	"net/http" // HTTP status codes
	"strings"  // Input trimming

	"vet_clinic/internal/domain"   // Entity model
	"vet_clinic/internal/response" // Envelope helpers
	"vet_clinic/internal/store"    // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const msgPetNotFound = "Pet not found"

// CreatePetRequest is the body of POST /pets
type CreatePetRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Species  string `json:"species" binding:"required,notblank"`
	Breed    string `json:"breed" binding:"required,notblank"`
	Age      *int   `json:"age" binding:"required,min=0"`
	ClientID *uint  `json:"client_id" binding:"required"`
}

// UpdatePetRequest is the body of PUT /pets/:id. Absent keys keep their value.
type UpdatePetRequest struct {
	Name    domain.Optional[string] `json:"name"`
	Species domain.Optional[string] `json:"species"`
	Breed   domain.Optional[string] `json:"breed"`
	Age     domain.Optional[int]    `json:"age"`
}

func (r UpdatePetRequest) patch() (store.PetPatch, error) {
	if err := errors.Join(
		notEmpty("name", r.Name),
		notEmpty("species", r.Species),
		notEmpty("breed", r.Breed),
		notNull("age", r.Age),
	); err != nil {
		return store.PetPatch{}, firstError(err)
	}
	if r.Age.HasValue() && r.Age.Value < 0 {
		return store.PetPatch{}, validationError("field 'age' must be at least 0")
	}
	return store.PetPatch{
		Name:    trimmed(r.Name),
		Species: trimmed(r.Species),
		Breed:   trimmed(r.Breed),
		Age:     r.Age,
	}, nil
}

func petView(p *domain.Pet) domain.PetView { return p.View() }

// ListPetsHandler lists pets, optionally those of ?client_id=
func ListPetsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := queryID(c, "client_id")
		if err != nil {
			respondError(c, err, "")
			return
		}
		pets, err := s.ListPets(c.Request.Context(), clientID)
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Pets retrieved", views(pets, petView))
	}
}

// GetPetHandler fetches one pet with its owner
func GetPetHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		pet, err := s.GetPet(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, msgPetNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Pet retrieved", pet.View())
	}
}

// CreatePetHandler registers a pet for an existing client
func CreatePetHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePetRequest
		if !bindJSON(c, &req) {
			return
		}
		pet, err := s.CreatePet(c.Request.Context(), store.NewPet{
			Name:     strings.TrimSpace(req.Name),
			Species:  strings.TrimSpace(req.Species),
			Breed:    strings.TrimSpace(req.Breed),
			Age:      *req.Age,
			ClientID: *req.ClientID,
		})
		if err != nil {
			respondError(c, err, "")
			return
		}
		logrus.WithFields(logrus.Fields{"pet_id": pet.ID, "client_id": pet.ClientID}).Info("Pet created")
		response.OK(c, http.StatusCreated, "Pet created", pet.View())
	}
}

// UpdatePetHandler applies a partial update
func UpdatePetHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdatePetRequest
		if !bindJSON(c, &req) {
			return
		}
		patch, err := req.patch()
		if err != nil {
			respondError(c, err, "")
			return
		}
		pet, err := s.UpdatePet(c.Request.Context(), id, patch)
		if err != nil {
			respondError(c, err, msgPetNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Pet updated", pet.View())
	}
}

// DeletePetHandler removes a pet with its appointments and clinical history
func DeletePetHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := s.DeletePet(c.Request.Context(), id); err != nil {
			respondError(c, err, msgPetNotFound)
			return
		}
		logrus.WithField("pet_id", id).Info("Pet deleted")
		response.OK(c, http.StatusOK, "Pet deleted", nil)
	}
}
