package presence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc, log: svc.log}
	r.GET("/users", h.jsonify(h.ListUsers))
	r.GET("/mean_time_weekday/:user_id", h.jsonify(h.MeanTimeWeekday))
	r.GET("/presence_weekday/:user_id", h.jsonify(h.PresenceWeekday))
	r.GET("/presence_start_end/:user_id", h.jsonify(h.PresenceStartEnd))
}

// jsonify: (結果, エラー) を返す関数を gin のハンドラにする。
// 集計側は HTTP を知らなくてよい
func (h *Handler) jsonify(fn func(c *gin.Context) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := fn(c)
		if err != nil {
			status := toHTTPStatus(err)
			if status >= http.StatusInternalServerError {
				h.log.Error("presence request failed", zap.String("path", c.FullPath()), zap.Error(err))
			}
			c.JSON(status, apiErrFrom(err))
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// ListUsers godoc
// @Summary  ユーザ一覧
// @Tags     presence
// @Produce  json
// @Success  200 {array} UserResponse
// @Router   /users [get]
func (h *Handler) ListUsers(c *gin.Context) (any, error) {
	return h.svc.Users(c.Request.Context())
}

// MeanTimeWeekday godoc
// @Summary  曜日別の平均在席時間（秒）
// @Tags     presence
// @Produce  json
// @Param    user_id path int true "user id"
// @Success  200 {array} WeekdayValue
// @Failure  404 {object} APIError
// @Router   /mean_time_weekday/{user_id} [get]
func (h *Handler) MeanTimeWeekday(c *gin.Context) (any, error) {
	id, err := userIDParam(c)
	if err != nil {
		return nil, err
	}
	return h.svc.MeanByWeekday(c.Request.Context(), id)
}

// PresenceWeekday godoc
// @Summary  曜日別の合計在席時間（秒）。先頭はヘッダ行
// @Tags     presence
// @Produce  json
// @Param    user_id path int true "user id"
// @Success  200 {array} WeekdayValue
// @Failure  404 {object} APIError
// @Router   /presence_weekday/{user_id} [get]
func (h *Handler) PresenceWeekday(c *gin.Context) (any, error) {
	id, err := userIDParam(c)
	if err != nil {
		return nil, err
	}
	return h.svc.TotalByWeekday(c.Request.Context(), id)
}

// PresenceStartEnd godoc
// @Summary  曜日別の代表的な出勤・退勤時刻
// @Tags     presence
// @Produce  json
// @Param    user_id path int true "user id"
// @Success  200 {array} StartEndRow
// @Failure  404 {object} APIError
// @Router   /presence_start_end/{user_id} [get]
func (h *Handler) PresenceStartEnd(c *gin.Context) (any, error) {
	id, err := userIDParam(c)
	if err != nil {
		return nil, err
	}
	return h.svc.StartEndByWeekday(c.Request.Context(), id)
}

// ===== helpers =====

func userIDParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return 0, ErrInvalid("user_id must be a number")
	}
	return id, nil
}

func apiErrFrom(err error) *APIError {
	var api *APIError
	if errors.As(err, &api) {
		return api
	}
	return ErrInternal("internal error")
}
