package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/usecase"
)

type Handler struct {
	pointsService *usecase.PointsService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(pointsService *usecase.PointsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		pointsService: pointsService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type listPointsRequest struct {
	Search   string `validate:"max=100"`
	Position string `validate:"omitempty,max=32"`
	Team     string `validate:"omitempty,max=100"`
	SortBy   string `validate:"omitempty,max=32"`
	Order    string `validate:"omitempty,oneof=asc desc ASC DESC"`
	Page     int    `validate:"gte=0"`
	PerPage  int    `validate:"gte=0,lte=500"`
}

type compareRequest struct {
	PlayerIDs []int64 `validate:"min=2,max=10,dive,gt=0"`
}

func (h *Handler) parseListQuery(ctx context.Context, values url.Values) (usecase.ListQuery, error) {
	req := listPointsRequest{
		Search:   strings.TrimSpace(values.Get("search")),
		Position: strings.TrimSpace(values.Get("position")),
		Team:     strings.TrimSpace(values.Get("team")),
		SortBy:   strings.TrimSpace(values.Get("sort")),
		Order:    strings.TrimSpace(values.Get("order")),
	}

	var err error
	if req.Page, err = queryInt(values, "page"); err != nil {
		return usecase.ListQuery{}, err
	}
	if req.PerPage, err = queryInt(values, "per_page"); err != nil {
		return usecase.ListQuery{}, err
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.ListQuery{}, err
	}

	return usecase.ListQuery{
		Search:   req.Search,
		Position: req.Position,
		Team:     req.Team,
		SortBy:   req.SortBy,
		Order:    req.Order,
		Page:     req.Page,
		PerPage:  req.PerPage,
	}, nil
}

func queryInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

// parseIDList reads "1,2,3"; repeated ids parameters are joined.
func parseIDList(values url.Values, key string) ([]int64, error) {
	var out []int64
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			item := strings.TrimSpace(part)
			if item == "" {
				continue
			}
			id, err := strconv.ParseInt(item, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid player id %q", usecase.ErrInvalidInput, item)
			}
			out = append(out, id)
		}
	}
	return out, nil
}

func parsePlayerID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid player id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

func parseWeek(raw string) (gameweek.Label, error) {
	label, err := gameweek.ParseLabel(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return label, nil
}
