// Package feedback records customer reviews.
package feedback

import (
	"context"
	"errors"
	"net/mail"
	"sort"
	"strings"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/fallback"
	"restaurant-ordering/internal/logging"

	"go.uber.org/zap"
)

// ErrUnavailable is returned when feedback could not be stored anywhere.
var ErrUnavailable = errors.New("please try again later")

const defaultRating = 5

type store interface {
	List(ctx context.Context) ([]domain.Feedback, error)
	Insert(ctx context.Context, f domain.Feedback) (*domain.Feedback, error)
}

type Service struct {
	primary  store
	fallback store
	logger   *zap.Logger
	now      func() time.Time
}

func New(primary, secondary store, logger *zap.Logger) *Service {
	return &Service{primary: primary, fallback: secondary, logger: logging.OrNop(logger), now: time.Now}
}

type Input struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Rating      int    `json:"rating"`
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"feedback"`
}

func (in *Input) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	in.Message = strings.TrimSpace(in.Message)
	if in.Rating == 0 {
		in.Rating = defaultRating
	}
	switch {
	case in.Name == "":
		return domain.NewValidationError("name required")
	case in.Email == "":
		return domain.NewValidationError("email required")
	case in.Message == "":
		return domain.NewValidationError("feedback required")
	case in.Rating < 1 || in.Rating > 5:
		return domain.NewValidationError("rating must be between 1 and 5")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.NewValidationError("invalid email")
	}
	return nil
}

func (s *Service) Submit(ctx context.Context, in Input) (*domain.Feedback, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	f := domain.Feedback{
		Name:        in.Name,
		Email:       in.Email,
		Rating:      in.Rating,
		OrderNumber: in.OrderNumber,
		Message:     in.Message,
		CreatedAt:   s.now().UTC(),
	}
	res := fallback.Run(ctx, s.logger, "feedback.insert",
		func(ctx context.Context) (*domain.Feedback, error) { return s.primary.Insert(ctx, f) },
		func(ctx context.Context) (*domain.Feedback, error) { return s.fallback.Insert(ctx, f) },
	)
	if res.Err != nil {
		s.logger.Error("feedback not stored", zap.Error(res.Err))
		return nil, ErrUnavailable
	}
	return res.Value, nil
}

// List returns feedback newest first.
func (s *Service) List(ctx context.Context) ([]domain.Feedback, error) {
	res := fallback.Run(ctx, s.logger, "feedback.list", s.primary.List, s.fallback.List)
	if res.Err != nil {
		return nil, res.Err
	}
	out := append([]domain.Feedback(nil), res.Value...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
