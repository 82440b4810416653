package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"sftails/middleware"
	"sftails/services/pet"
	"sftails/services/storage"

	"github.com/gin-gonic/gin"
)

// PetHandler exposes pet profile endpoints.
type PetHandler struct {
	Pets    pet.PetService
	Storage storage.StorageService
}

// NewPetHandler creates a PetHandler.
func NewPetHandler(pets pet.PetService, store storage.StorageService) *PetHandler {
	return &PetHandler{Pets: pets, Storage: store}
}

// CreatePetHandler handles POST /api/pets.
func (h *PetHandler) CreatePetHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var input pet.PetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Pets.Create(principal.SubjectID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListPetsHandler handles GET /api/pets.
func (h *PetHandler) ListPetsHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	pets, err := h.Pets.ListForClient(principal.SubjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pets)
}

// UpdatePetHandler handles PUT /api/pets/:id.
func (h *PetHandler) UpdatePetHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	petID := c.Param("id")

	var input pet.PetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Pets.Update(principal.SubjectID, petID, input)
	if err != nil {
		if errors.Is(err, pet.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePetHandler handles DELETE /api/pets/:id.
func (h *PetHandler) DeletePetHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	petID := c.Param("id")

	if err := h.Pets.Delete(principal.SubjectID, petID); err != nil {
		if errors.Is(err, pet.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted"})
}

// UploadPetPhotoHandler handles POST /api/pets/:id/photo. The file goes to
// Cloudinary; only the returned public ID is stored on the pet.
func (h *PetHandler) UploadPetPhotoHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	petID := c.Param("id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	photoID, err := h.Storage.UploadFile(c.Request.Context(), tempFilePath, "pets")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed", "details": err.Error()})
		return
	}

	updated, err := h.Pets.SetPhoto(principal.SubjectID, petID, photoID)
	if err != nil {
		if errors.Is(err, pet.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, updated)
}
