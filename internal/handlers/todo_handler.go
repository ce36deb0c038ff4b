package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapp/internal/models"
	"todoapp/internal/services"
)

type TodoHandler struct {
	todoService services.TodoService
}

func NewTodoHandler(todoService services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func parseTodoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return 0, false
	}
	return id, true
}

// @Summary      Create a todo
// @Tags         Todos
// @Accept       json
// @Produce      json
// @Param        todo  body      models.CreateTodoRequest  true  "Todo data"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/todo [post]
func (h *TodoHandler) Create(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), account.ID, &req)
	if err != nil {
		if err == services.ErrTitleRequired {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"todo":    todo,
		"message": "Todo created successfully",
	})
}

// @Summary      List todos
// @Tags         Todos
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/todo [get]
func (h *TodoHandler) List(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	todos, err := h.todoService.GetAll(c.Request.Context(), account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch todos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todos": todos,
		"count": len(todos),
	})
}

// @Summary      Get a todo
// @Tags         Todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/todo/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetByID(c.Request.Context(), account.ID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch todo"})
		return
	}
	if todo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// @Summary      Update a todo
// @Tags         Todos
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Todo ID"
// @Param        todo  body      models.UpdateTodoRequest  true  "Fields to update"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /api/todo/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), account.ID, id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}
	if todo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todo":    todo,
		"message": "Todo updated successfully",
	})
}

// @Summary      Toggle completion
// @Tags         Todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/todo/{id}/toggle [patch]
func (h *TodoHandler) Toggle(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.Toggle(c.Request.Context(), account.ID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle todo"})
		return
	}
	if todo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	message := "Todo marked as incomplete"
	if todo.Completed {
		message = "Todo marked as completed"
	}
	c.JSON(http.StatusOK, gin.H{
		"todo":    todo,
		"message": message,
	})
}

// @Summary      Delete a todo
// @Tags         Todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/todo/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	account, ok := accountFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	deleted, err := h.todoService.Delete(c.Request.Context(), account.ID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}
