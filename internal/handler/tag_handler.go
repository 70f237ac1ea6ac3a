package handler

import (
	"net/http"
	"strconv"

	"gamerate/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTagResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
	}
}

// TagHandler serves the /tags routes.
type TagHandler struct {
	db *gorm.DB
}

func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{db: db}
}

// GetTags godoc
// @Summary      Get all tags
// @Description  Retrieves every tag, ordered by name.
// @Tags         tags
// @Produce      json
// @Success      200  {object}  map[string][]TagResponse
// @Router       /tags [get]
func (h *TagHandler) GetTags(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.Order("name ASC").Find(&tags).Error; err != nil {
		respondError(c, err)
		return
	}

	response := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, newTagResponse(tag))
	}
	c.JSON(http.StatusOK, gin.H{"tags": response})
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  Deletes a tag and removes it from every game that referenced it.
// @Tags         tags
// @Produce      json
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  map[string]string "{"message": "Tag deleted successfully"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondError(c, badRequest("Invalid tag ID"))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("Tag not found")
		}
		// Cascade: the tag disappears from every game that carried it.
		return tx.Where("tag_id = ?", id).Delete(&models.GameTag{}).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
