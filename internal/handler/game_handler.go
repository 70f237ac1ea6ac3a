package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gamerate/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxReviewTextLen bounds the free-text review field.
const maxReviewTextLen = 10000

// region --- DTOs ---

// GameInput carries create/update input. Every field is a pointer so partial
// updates can tell "absent" apart from "set to the zero value".
type GameInput struct {
	Name              *string   `json:"name"`
	ImageURL          *string   `json:"image_url"`
	ReleaseYear       *int      `json:"release_year"`
	Developer         *string   `json:"developer"`
	Publisher         *string   `json:"publisher"`
	Platform          *string   `json:"platform"`
	ArtRating         *float64  `json:"art_rating"`
	MusicRating       *float64  `json:"music_rating"`
	StoryRating       *float64  `json:"story_rating"`
	PlayabilityRating *float64  `json:"playability_rating"`
	InnovationRating  *float64  `json:"innovation_rating"`
	PerformanceRating *float64  `json:"performance_rating"`
	ReviewText        *string   `json:"review_text"`
	MyOverallScore    *float64  `json:"my_overall_score"`
	IsCompleted       *bool     `json:"is_completed"`
	PlayTimeHours     *float64  `json:"play_time_hours"`
	Tags              *[]string `json:"tags"`
}

// GameTagsInput is the body of the "add tags to game" endpoint.
type GameTagsInput struct {
	Tags *[]string `json:"tags"`
}

type GameResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	ImageURL          *string   `json:"image_url"`
	ReleaseYear       *int      `json:"release_year"`
	Developer         *string   `json:"developer"`
	Publisher         *string   `json:"publisher"`
	Platform          *string   `json:"platform"`
	ArtRating         float64   `json:"art_rating"`
	MusicRating       float64   `json:"music_rating"`
	StoryRating       float64   `json:"story_rating"`
	PlayabilityRating float64   `json:"playability_rating"`
	InnovationRating  float64   `json:"innovation_rating"`
	PerformanceRating float64   `json:"performance_rating"`
	ReviewText        *string   `json:"review_text"`
	MyOverallScore    *float64  `json:"my_overall_score"`
	IsCompleted       bool      `json:"is_completed"`
	PlayTimeHours     *float64  `json:"play_time_hours"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Tags              []string  `json:"tags"`
}

func newGameResponse(game models.Game) GameResponse {
	// Always a list, never null, even for untagged games.
	tags := make([]string, 0, len(game.Tags))
	for _, tag := range game.Tags {
		if tag != nil {
			tags = append(tags, tag.Name)
		}
	}

	return GameResponse{
		ID:                game.ID,
		Name:              game.Name,
		ImageURL:          game.ImageURL,
		ReleaseYear:       game.ReleaseYear,
		Developer:         game.Developer,
		Publisher:         game.Publisher,
		Platform:          game.Platform,
		ArtRating:         game.ArtRating,
		MusicRating:       game.MusicRating,
		StoryRating:       game.StoryRating,
		PlayabilityRating: game.PlayabilityRating,
		InnovationRating:  game.InnovationRating,
		PerformanceRating: game.PerformanceRating,
		ReviewText:        game.ReviewText,
		MyOverallScore:    game.MyOverallScore,
		IsCompleted:       game.IsCompleted,
		PlayTimeHours:     game.PlayTimeHours,
		CreatedAt:         game.CreatedAt,
		UpdatedAt:         game.UpdatedAt,
		Tags:              tags,
	}
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// region --- Validation ---

type ratingField struct {
	name  string
	value *float64
}

func (in *GameInput) ratingFields() []ratingField {
	return []ratingField{
		{"art_rating", in.ArtRating},
		{"music_rating", in.MusicRating},
		{"story_rating", in.StoryRating},
		{"playability_rating", in.PlayabilityRating},
		{"innovation_rating", in.InnovationRating},
		{"performance_rating", in.PerformanceRating},
	}
}

// validateRatings range-checks every rating field present in the input. When
// required is set, absent fields are rejected too (creation requires all six).
func validateRatings(in *GameInput, required bool) *apiError {
	for _, f := range in.ratingFields() {
		if f.value == nil {
			if required {
				return badRequest("Missing required field: %s", f.name)
			}
			continue
		}
		if *f.value < 0.0 || *f.value > 10.0 {
			return badRequest("%s must be between 0.0 and 10.0", f.name)
		}
	}
	return nil
}

func validateReviewText(in *GameInput) *apiError {
	if in.ReviewText != nil && len(*in.ReviewText) > maxReviewTextLen {
		return badRequest("review_text must be at most %d characters", maxReviewTextLen)
	}
	return nil
}

// sortColumns maps the exposed sort_by names onto their columns. "random" is
// handled separately since it has no column or direction.
var sortColumns = map[string]string{
	"id":                 "id",
	"name":               "name",
	"release_year":       "release_year",
	"art_rating":         "art_rating",
	"music_rating":       "music_rating",
	"story_rating":       "story_rating",
	"playability_rating": "playability_rating",
	"innovation_rating":  "innovation_rating",
	"performance_rating": "performance_rating",
	"my_overall_score":   "my_overall_score",
	"created_at":         "created_at",
	"updated_at":         "updated_at",
}

const sortRandom = "random"

// allowedSortFields is the user-facing allow-list, in a stable order for
// error messages.
var allowedSortFields = []string{
	"id", "name", "release_year", "art_rating", "music_rating", "story_rating",
	"playability_rating", "innovation_rating", "performance_rating",
	"my_overall_score", "created_at", "updated_at", "random",
}

// endregion

// GameHandler serves the /games routes. The database handle is injected
// rather than read from a global.
type GameHandler struct {
	db *gorm.DB
}

func NewGameHandler(db *gorm.DB) *GameHandler {
	return &GameHandler{db: db}
}

// GetGames godoc
// @Summary      List games
// @Description  Retrieves a filtered, sorted, paginated list of games with their tags.
// @Tags         games
// @Produce      json
// @Param        search   query  string  false  "Substring matched against name, review, developer, publisher, platform and tag names"
// @Param        sort_by  query  string  false  "Sort field"  default(id)
// @Param        order    query  string  false  "asc or desc (ignored when sort_by=random)"  default(asc)
// @Param        page     query  int     false  "Page number"  default(1)
// @Param        per_page query  int     false  "Items per page"  default(10)
// @Success      200  {object}  PaginatedGameResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	sortBy := c.DefaultQuery("sort_by", "id")
	order := strings.ToUpper(c.DefaultQuery("order", "asc"))

	if _, ok := sortColumns[sortBy]; !ok && sortBy != sortRandom {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sort_by field. Allowed: " + strings.Join(allowedSortFields, ", "),
		})
		return
	}
	// Direction is meaningless for random order, so it is not validated there.
	if sortBy != sortRandom && order != "ASC" && order != "DESC" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order. Must be 'asc' or 'desc'"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100 // Max page size
	}

	search := c.Query("search")
	applyFilter := func(q *gorm.DB) *gorm.DB {
		if search == "" {
			return q
		}
		pattern := "%" + search + "%"
		// Match on the game's own text columns, or on any associated tag
		// name. The EXISTS subquery keeps a game with several matching
		// tags down to a single row.
		return q.Where(
			`name LIKE ? OR review_text LIKE ? OR developer LIKE ? OR publisher LIKE ? OR platform LIKE ?
			OR EXISTS (SELECT 1 FROM game_tags JOIN tags ON game_tags.tag_id = tags.id
				WHERE game_tags.game_id = games.id AND tags.name LIKE ?)`,
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	// Total count over the filter, independent of the page window.
	var total int64
	if err := applyFilter(h.db.Model(&models.Game{})).Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	query := applyFilter(h.db.Model(&models.Game{}))
	if sortBy == sortRandom {
		query = query.Order("RANDOM()")
	} else {
		query = query.Order(sortColumns[sortBy] + " " + order)
	}

	var games []models.Game
	err = query.Preload("Tags").Offset((page - 1) * perPage).Limit(perPage).Find(&games).Error
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]GameResponse, 0, len(games))
	for _, game := range games {
		data = append(data, newGameResponse(game))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(data, total, page, perPage))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves one game, including its full tag-name list.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200  {object}  GameResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, badRequest("Invalid game ID"))
		return
	}

	var game models.Game
	if err := h.db.Preload("Tags").First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFound("Game not found"))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a game. Name and all six rating fields are required; ratings must lie in [0.0, 10.0]. An optional tags list is resolved by name, creating missing tags.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  map[string]any "{"message": "...", "game_id": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Game with this name already exists"
// @Router       /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var input GameInput
	if apiErr := bindJSON(c, &input); apiErr != nil {
		respondError(c, apiErr)
		return
	}

	if input.Name == nil || *input.Name == "" {
		respondError(c, badRequest("Missing required field: name"))
		return
	}
	if apiErr := validateRatings(&input, true); apiErr != nil {
		respondError(c, apiErr)
		return
	}
	if apiErr := validateReviewText(&input); apiErr != nil {
		respondError(c, apiErr)
		return
	}

	game := models.Game{
		Name:              *input.Name,
		ImageURL:          input.ImageURL,
		ReleaseYear:       input.ReleaseYear,
		Developer:         input.Developer,
		Publisher:         input.Publisher,
		Platform:          input.Platform,
		ArtRating:         *input.ArtRating,
		MusicRating:       *input.MusicRating,
		StoryRating:       *input.StoryRating,
		PlayabilityRating: *input.PlayabilityRating,
		InnovationRating:  *input.InnovationRating,
		PerformanceRating: *input.PerformanceRating,
		ReviewText:        input.ReviewText,
		MyOverallScore:    input.MyOverallScore,
		PlayTimeHours:     input.PlayTimeHours,
	}
	if input.IsCompleted != nil {
		game.IsCompleted = *input.IsCompleted
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("Game with this name already exists")
			}
			return err
		}
		if input.Tags != nil {
			if _, err := attachTags(tx, game.ID, *input.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Game created successfully", "game_id": game.ID})
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Partial update: only fields present in the body change. A present tags list replaces the game's associations wholesale. updated_at is refreshed whenever anything changed.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path  int       true  "Game ID"
// @Param        input body  GameInput true  "Fields to change"
// @Success      200  {object}  map[string]string "{"message": "Game updated successfully"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      409  {object}  ErrorResponse "Game with this name already exists"
// @Router       /games/{id} [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, badRequest("Invalid game ID"))
		return
	}

	var input GameInput
	if apiErr := bindJSON(c, &input); apiErr != nil {
		respondError(c, apiErr)
		return
	}

	updates := map[string]any{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setFloat := func(column string, v *float64) {
		if v != nil {
			updates[column] = *v
		}
	}
	setString("name", input.Name)
	setString("image_url", input.ImageURL)
	if input.ReleaseYear != nil {
		updates["release_year"] = *input.ReleaseYear
	}
	setString("developer", input.Developer)
	setString("publisher", input.Publisher)
	setString("platform", input.Platform)
	setFloat("art_rating", input.ArtRating)
	setFloat("music_rating", input.MusicRating)
	setFloat("story_rating", input.StoryRating)
	setFloat("playability_rating", input.PlayabilityRating)
	setFloat("innovation_rating", input.InnovationRating)
	setFloat("performance_rating", input.PerformanceRating)
	setString("review_text", input.ReviewText)
	setFloat("my_overall_score", input.MyOverallScore)
	if input.IsCompleted != nil {
		updates["is_completed"] = *input.IsCompleted
	}
	setFloat("play_time_hours", input.PlayTimeHours)

	changed := len(updates) > 0 || input.Tags != nil

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Game not found")
			}
			return err
		}
		// Existence outranks field validation: a bad rating against a
		// missing id is a 404, not a 400.
		if apiErr := validateRatings(&input, false); apiErr != nil {
			return apiErr
		}
		if apiErr := validateReviewText(&input); apiErr != nil {
			return apiErr
		}
		if !changed {
			return nil
		}

		if len(updates) > 0 {
			if err := tx.Model(&game).Updates(updates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return conflict("Game with this name already exists")
				}
				return err
			}
		} else {
			// Tag-only update still refreshes updated_at.
			if err := tx.Model(&game).Update("updated_at", time.Now()).Error; err != nil {
				return err
			}
		}

		if input.Tags != nil {
			// Wholesale replacement: clear, then reinsert the resolved set.
			if err := tx.Where("game_id = ?", game.ID).Delete(&models.GameTag{}).Error; err != nil {
				return err
			}
			if _, err := attachTags(tx, game.ID, *input.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": "No fields to update"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game updated successfully"})
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game and all of its tag associations.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200  {object}  map[string]string "{"message": "Game deleted successfully"}"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, badRequest("Invalid game ID"))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Game{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("Game not found")
		}
		// Cascade: drop every association the game held.
		return tx.Where("game_id = ?", id).Delete(&models.GameTag{}).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}

// AddGameTags godoc
// @Summary      Add tags to a game
// @Description  Resolves the given tag names (creating missing tags) and attaches them to the game. Already-attached tags are ignored; the response reports how many associations are new.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path  int           true  "Game ID"
// @Param        input body  GameTagsInput true  "Tag names"
// @Success      200  {object}  map[string]any "{"message": "...", "added_count": 2}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/tags [post]
func (h *GameHandler) AddGameTags(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, badRequest("Invalid game ID"))
		return
	}

	var input GameTagsInput
	if apiErr := bindJSON(c, &input); apiErr != nil {
		respondError(c, apiErr)
		return
	}
	if input.Tags == nil {
		respondError(c, badRequest("Request must be JSON with a 'tags' list"))
		return
	}

	var added int
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Game not found")
			}
			return err
		}
		var txErr error
		added, txErr = attachTags(tx, game.ID, *input.Tags)
		return txErr
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Successfully added %d new tags to game %d", added, id),
		"added_count": added,
	})
}

// RemoveGameTag godoc
// @Summary      Remove one tag from a game
// @Description  Deletes a single (game, tag) association.
// @Tags         games
// @Produce      json
// @Param        id    path int true "Game ID"
// @Param        tagId path int true "Tag ID"
// @Success      200  {object}  map[string]string "{"message": "Game tag deleted successfully"}"
// @Failure      404  {object}  ErrorResponse "Game-tag relationship not found"
// @Router       /games/{id}/tags/{tagId} [delete]
func (h *GameHandler) RemoveGameTag(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, badRequest("Invalid game ID"))
		return
	}
	tagID, err := strconv.Atoi(c.Param("tagId"))
	if err != nil {
		respondError(c, badRequest("Invalid tag ID"))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("game_id = ? AND tag_id = ?", gameID, tagID).Delete(&models.GameTag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("Game-tag relationship not found")
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game tag deleted successfully"})
}
