package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrInvalidHome indicates a home request failed validation.
var ErrInvalidHome = errors.New("invalid home")

var (
	minLatitude  = decimal.NewFromInt(-90)
	maxLatitude  = decimal.NewFromInt(90)
	minLongitude = decimal.NewFromInt(-180)
	maxLongitude = decimal.NewFromInt(180)
)

// HomeStore abstracts home persistence.
type HomeStore interface {
	GetHomeByID(ctx context.Context, id uuid.UUID) (*model.Home, error)
	GetAllHomes(ctx context.Context) ([]model.Home, error)
	CreateHome(ctx context.Context, home *model.Home) (*model.Home, error)
	UpdateHome(ctx context.Context, id uuid.UUID, home *model.Home) (bool, error)
	DeleteHome(ctx context.Context, id uuid.UUID) (bool, error)
}

// WeatherProvider supplies current conditions for coordinates. A nil result
// with nil error means the upstream was unavailable.
type WeatherProvider interface {
	CurrentByCoordinates(ctx context.Context, lat, lon decimal.Decimal) (*model.Weather, error)
}

// Service owns home management and the home-with-weather view.
type Service struct {
	homes   HomeStore
	weather WeatherProvider
}

func NewService(homes HomeStore, weather WeatherProvider) *Service {
	return &Service{homes: homes, weather: weather}
}

func (s *Service) GetHomeByID(ctx context.Context, id uuid.UUID) (*model.Home, error) {
	return s.homes.GetHomeByID(ctx, id)
}

func (s *Service) GetAllHomes(ctx context.Context) ([]model.Home, error) {
	return s.homes.GetAllHomes(ctx)
}

// GetHomeWithWeather returns the home joined with current weather for its
// coordinates. Weather failures degrade to a nil weather field rather than
// failing the request.
func (s *Service) GetHomeWithWeather(ctx context.Context, id uuid.UUID) (*model.HomeWithWeather, error) {
	home, err := s.homes.GetHomeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, nil
	}

	result := &model.HomeWithWeather{Home: *home}
	if s.weather != nil {
		weather, err := s.weather.CurrentByCoordinates(ctx, home.Latitude, home.Longitude)
		if err != nil {
			log.Warn().Err(err).Str("home", home.ID.String()).Msg("weather lookup failed")
		} else {
			result.Weather = weather
		}
	}
	return result, nil
}

func (s *Service) CreateHome(ctx context.Context, req *model.CreateHomeRequest) (*model.Home, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	home := &model.Home{
		UserID:    req.UserID,
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Area:      req.Area,
		Status:    model.HomeStatusActive,
	}

	return s.homes.CreateHome(ctx, home)
}

// UpdateHome applies the provided fields. Returns false when the home does not
// exist.
func (s *Service) UpdateHome(ctx context.Context, id uuid.UUID, req *model.UpdateHomeRequest) (bool, error) {
	existing, err := s.homes.GetHomeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := validateUpdate(req); err != nil {
		return false, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		existing.Address = strings.TrimSpace(*req.Address)
	}
	if req.Latitude != nil {
		existing.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = *req.Longitude
	}
	if req.Area != nil {
		existing.Area = *req.Area
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}

	return s.homes.UpdateHome(ctx, id, existing)
}

func (s *Service) DeleteHome(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := s.homes.GetHomeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return s.homes.DeleteHome(ctx, id)
}

func validateCreate(req *model.CreateHomeRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidHome)
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidHome)
	}
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return err
	}
	if !req.Area.IsPositive() {
		return fmt.Errorf("%w: area must be positive", ErrInvalidHome)
	}
	return nil
}

func validateUpdate(req *model.UpdateHomeRequest) error {
	if req.Latitude != nil {
		if req.Latitude.LessThan(minLatitude) || req.Latitude.GreaterThan(maxLatitude) {
			return fmt.Errorf("%w: latitude out of range", ErrInvalidHome)
		}
	}
	if req.Longitude != nil {
		if req.Longitude.LessThan(minLongitude) || req.Longitude.GreaterThan(maxLongitude) {
			return fmt.Errorf("%w: longitude out of range", ErrInvalidHome)
		}
	}
	if req.Area != nil && !req.Area.IsPositive() {
		return fmt.Errorf("%w: area must be positive", ErrInvalidHome)
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidHome, *req.Status)
	}
	return nil
}

func validateCoordinates(lat, lon decimal.Decimal) error {
	if lat.LessThan(minLatitude) || lat.GreaterThan(maxLatitude) {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidHome)
	}
	if lon.LessThan(minLongitude) || lon.GreaterThan(maxLongitude) {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidHome)
	}
	return nil
}
