package http

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"schedule-board/internal/config"
	"schedule-board/internal/domain"
	"schedule-board/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	blocks    service.BlockService
	occupancy service.OccupancyService
	messages  config.Messages

	// sortState survives across list requests so that requesting the same
	// sort key twice flips the direction, like clicking a table header.
	// The board is a single-operator tool, but gin still serves each
	// request on its own goroutine, so access goes through sortMu.
	sortMu    sync.Mutex
	sortState service.SortState
}

func NewHandler(users service.UserService, blocks service.BlockService, occupancy service.OccupancyService, messages config.Messages) *Handler {
	return &Handler{
		users:     users,
		blocks:    blocks,
		occupancy: occupancy,
		messages:  messages,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/users", h.createUser)
		api.GET("/users", h.listUsers)
		api.PUT("/users/:id", h.updateUser)
		api.DELETE("/users/:id", h.deleteUser)
		api.POST("/blocks", h.createBlock)
		api.GET("/blocks", h.listBlocks)
		api.DELETE("/blocks/:id", h.deleteBlock)
		api.GET("/schedule", h.getSchedule)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type createUserRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required"`
}

type updateUserRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Color   string `json:"color"`
}

type createBlockRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
}

type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Color   string `json:"color"`
}

type BlockResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type HourSlotResponse struct {
	Hour  string `json:"hour"`
	Color string `json:"color"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserParams{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, service.UpdateUserParams{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Color:   req.Color,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id.String()})
}

// listUsers applies the optional filter and sort query parameters:
// filter_key/filter narrow the list, sort_key selects the column and
// sort_dir forces a direction; without sort_dir, repeating the same sort_key
// toggles between ascending and descending.
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	users = service.FilterUsers(users, c.Query("filter_key"), c.Query("filter"))

	if key := c.Query("sort_key"); key != "" {
		h.sortMu.Lock()
		switch dir := c.Query("sort_dir"); dir {
		case string(service.SortAsc), string(service.SortDesc):
			h.sortState = service.SortState{Key: key, Direction: service.SortDirection(dir)}
		default:
			h.sortState.Toggle(key)
		}
		state := h.sortState
		h.sortMu.Unlock()
		users = service.SortUsers(users, state.Key, state.Direction)
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createBlock(c *gin.Context) {
	var req createBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	block, err := h.blocks.Add(c.Request.Context(), service.AddBlockParams{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		UserID:    userID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blockToResponse(*block))
}

func (h *Handler) listBlocks(c *gin.Context) {
	blocks, err := h.blocks.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]BlockResponse, len(blocks))
	for i := range blocks {
		resp[i] = blockToResponse(blocks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteBlock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}

	if err := h.blocks.Remove(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id.String()})
}

func (h *Handler) getSchedule(c *gin.Context) {
	slots, err := h.occupancy.Resolve(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]HourSlotResponse, len(slots))
	for i := range slots {
		resp[i] = HourSlotResponse{Hour: slots[i].Hour, Color: slots[i].Color}
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps the service error taxonomy to a status code and the
// configured operator-facing copy. Anything unmapped is a field validation
// failure; the in-memory repositories themselves cannot fail.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": h.messages.DuplicateEmail})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": h.messages.Conflict})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": h.messages.NotFound})
	case errors.Is(err, service.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": h.messages.InvalidRange})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		Address: user.Address,
		Phone:   user.Phone,
		Email:   user.Email,
		Color:   user.Color,
	}
}

func blockToResponse(block domain.TimeBlock) BlockResponse {
	return BlockResponse{
		ID:        block.ID.String(),
		UserID:    block.UserID.String(),
		StartTime: block.StartTime,
		EndTime:   block.EndTime,
	}
}
