package directory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/user/:user_id", h.GetUser)
}

// GetUser godoc
// @Summary  ユーザの名前とアバター（見つからなければ Anonymous user）
// @Tags     directory
// @Produce  json
// @Param    user_id path int true "user id"
// @Success  200 {object} User
// @Router   /user/{user_id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ARGUMENT", "message": "user_id must be a number"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Resolve(c.Request.Context(), id))
}
