package reactions_module

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/store"
)

// createReactionRequest carries a new reaction rule
type createReactionRequest struct {
	Keyword  string `json:"keyword" binding:"required"`
	Response string `json:"response" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=message emoji command"`
}

// updateReactionRequest carries a partial reaction update. Provided fields
// must still satisfy the stored-rule invariants
type updateReactionRequest struct {
	Keyword  *string `json:"keyword" binding:"omitempty,min=1"`
	Response *string `json:"response" binding:"omitempty,min=1"`
	Type     *string `json:"type" binding:"omitempty,oneof=message emoji command"`
}

// ListReactions handles GET requests for all reaction rules
func ListReactions(c *gin.Context) {
	reactions, err := reactionStore.Reactions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get reactions"})
		return
	}

	c.JSON(http.StatusOK, reactions)
}

// GetReaction handles GET requests for a single reaction rule
func GetReaction(c *gin.Context) {
	id, ok := reactionID(c)
	if !ok {
		return
	}

	reaction, err := reactionStore.Reaction(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get reaction"})
		return
	}

	c.JSON(http.StatusOK, reaction)
}

// CreateReaction handles POST requests creating a new reaction rule
func CreateReaction(c *gin.Context) {
	var req createReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reaction data: " + err.Error()})
		return
	}

	reaction, err := reactionStore.CreateReaction(req.Keyword, req.Response, store.ReactionType(req.Type))
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create reaction"})
		return
	}

	addEvent(store.EventReactionCreated, fmt.Sprintf("New reaction %q created", reaction.Keyword))

	c.JSON(http.StatusCreated, reaction)
}

// UpdateReaction handles PUT requests merging a partial update into an
// existing reaction rule
func UpdateReaction(c *gin.Context) {
	id, ok := reactionID(c)
	if !ok {
		return
	}

	var req updateReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reaction data: " + err.Error()})
		return
	}

	patch := store.ReactionPatch{
		Keyword:  req.Keyword,
		Response: req.Response,
	}
	if req.Type != nil {
		typ := store.ReactionType(*req.Type)
		patch.Type = &typ
	}

	reaction, err := reactionStore.UpdateReaction(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update reaction"})
		return
	}

	addEvent(store.EventReactionUpdated, fmt.Sprintf("Reaction %q updated", reaction.Keyword))

	c.JSON(http.StatusOK, reaction)
}

// DeleteReaction handles DELETE requests removing a reaction rule
func DeleteReaction(c *gin.Context) {
	id, ok := reactionID(c)
	if !ok {
		return
	}

	// Fetch first so the deletion event can name the keyword
	reaction, err := reactionStore.Reaction(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Reaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete reaction"})
		return
	}

	removed, err := reactionStore.DeleteReaction(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete reaction"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reaction not found"})
		return
	}

	addEvent(store.EventReactionDeleted, fmt.Sprintf("Reaction %q deleted", reaction.Keyword))

	c.Status(http.StatusNoContent)
}

// reactionID parses the id path parameter, answering 400 on bad input
func reactionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reaction ID"})
		return 0, false
	}
	return id, true
}

// addEvent appends an event, logging instead of failing when the store
// cannot record it
func addEvent(typ, message string) {
	if _, err := reactionStore.AddEvent(typ, message); err != nil {
		log.Printf("[API]: could not record %s event: %v", typ, err)
	}
}
