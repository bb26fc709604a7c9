package presence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ===== Error model (attendance と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func IsNotFound(err error) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == CodeNotFound
}

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

// RecordSource は最新の RecordStore を返すもの（通常は cache.Slot）
type RecordSource interface {
	Get(ctx context.Context) (*RecordStore, error)
}

type Service struct {
	records RecordSource
	log     *zap.Logger
}

func NewService(records RecordSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{records: records, log: log}
}

// GET /users
func (s *Service) ListUserIDs(ctx context.Context) ([]int, error) {
	store, err := s.records.Get(ctx)
	if err != nil {
		return nil, err
	}
	return store.UserIDs(), nil
}

func (s *Service) Users(ctx context.Context) ([]UserResponse, error) {
	ids, err := s.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, UserResponse{UserID: id, Name: fmt.Sprintf("User %d", id)})
	}
	return out, nil
}

// GET /mean_time_weekday/:user_id
func (s *Service) MeanByWeekday(ctx context.Context, userID int) ([]WeekdayValue, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return meanRows(GroupByWeekday(u)), nil
}

// GET /presence_weekday/:user_id
func (s *Service) TotalByWeekday(ctx context.Context, userID int) ([]WeekdayValue, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return totalRows(GroupByWeekday(u)), nil
}

// GET /presence_start_end/:user_id
func (s *Service) StartEndByWeekday(ctx context.Context, userID int) ([]StartEndRow, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return startEndRows(GroupByWeekdayStartEnd(u)), nil
}

// 存在しないユーザは NOT_FOUND。記録0件のユーザとは区別する
func (s *Service) user(ctx context.Context, userID int) (*UserPresence, error) {
	store, err := s.records.Get(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := store.User(userID)
	if !ok {
		s.log.Debug("user not found", zap.Int("user_id", userID))
		return nil, ErrNotFound(fmt.Sprintf("user %d not found", userID))
	}
	return u, nil
}
