package promotion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/fallback"
	"restaurant-ordering/internal/logging"

	"go.uber.org/zap"
)

type store interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	Insert(ctx context.Context, p domain.Promotion) (*domain.Promotion, error)
	Update(ctx context.Context, id string, p domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, id string) error
}

// ReadFunc lists promotions when the primary store cannot.
type ReadFunc func(ctx context.Context) ([]domain.Promotion, error)

type Service struct {
	primary  store
	fallback store
	reads    ReadFunc
	logger   *zap.Logger
	now      func() time.Time
}

// New wires the primary store with the write fallback and the read
// fallback. A nil reads uses secondary.List.
func New(primary, secondary store, reads ReadFunc, logger *zap.Logger) *Service {
	if reads == nil {
		reads = secondary.List
	}
	return &Service{primary: primary, fallback: secondary, reads: reads, logger: logging.OrNop(logger), now: time.Now}
}

// Input is the admin form for a promotion.
type Input struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	ImageURL            string     `json:"image"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	Active              bool       `json:"active"`
	DiscountPercentage  *float64   `json:"discountPercentage"`
	DiscountAmountCents *int64     `json:"discountAmountCents"`
	NewPriceCents       *int64     `json:"newPriceCents"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.NewValidationError("title required")
	}
	if in.StartDate.IsZero() {
		return domain.NewValidationError("start date required")
	}
	if in.EndDate != nil && civil(*in.EndDate).Before(civil(in.StartDate)) {
		return domain.NewValidationError("end date before start date")
	}
	if in.DiscountPercentage != nil && (*in.DiscountPercentage < 0 || *in.DiscountPercentage > 100) {
		return domain.NewValidationError("discount percentage out of range")
	}
	return nil
}

func (in Input) toDomain() domain.Promotion {
	return domain.Promotion{
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		ImageURL:            in.ImageURL,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		Active:              in.Active,
		DiscountPercentage:  in.DiscountPercentage,
		DiscountAmountCents: in.DiscountAmountCents,
		NewPriceCents:       in.NewPriceCents,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Promotion, error) {
	res := fallback.Run(ctx, s.logger, "promotions.list", s.primary.List, s.reads)
	return res.Value, res.Err
}

// Active lists the promotions running today.
func (s *Service) Active(ctx context.Context) ([]domain.Promotion, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]domain.Promotion, 0, len(all))
	for _, p := range all {
		if IsActive(p, now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Promotion, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toDomain()
	p.CreatedAt = s.now().UTC()
	p.UpdatedAt = p.CreatedAt
	res := fallback.Run(ctx, s.logger, "promotions.insert",
		func(ctx context.Context) (*domain.Promotion, error) { return s.primary.Insert(ctx, p) },
		func(ctx context.Context) (*domain.Promotion, error) { return s.fallback.Insert(ctx, p) },
	)
	if res.Err != nil {
		return nil, fmt.Errorf("create promotion: %w", res.Err)
	}
	return res.Value, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Promotion, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toDomain()
	p.UpdatedAt = s.now().UTC()
	res := fallback.Run(ctx, s.logger, "promotions.update",
		func(ctx context.Context) (*domain.Promotion, error) { return s.primary.Update(ctx, id, p) },
		func(ctx context.Context) (*domain.Promotion, error) { return s.fallback.Update(ctx, id, p) },
	)
	if res.Err != nil {
		return nil, fmt.Errorf("update promotion: %w", res.Err)
	}
	return res.Value, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := fallback.Exec(ctx, s.logger, "promotions.delete",
		func(ctx context.Context) error { return s.primary.Delete(ctx, id) },
		func(ctx context.Context) error { return s.fallback.Delete(ctx, id) },
	)
	if res.Err != nil {
		return fmt.Errorf("delete promotion: %w", res.Err)
	}
	return nil
}
