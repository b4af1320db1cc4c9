package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "prorental/internal/config"
	"prorental/internal/domain"
	"prorental/internal/domain/models"
	"prorental/internal/repositories"
	"prorental/internal/utils"
)

// CatalogService covers CRUD over the two rentable variants. Availability is
// normally driven by the booking lifecycle, but direct status edits through
// Update are preserved for compatibility with the admin frontend.
type CatalogService struct {
	ItemRepo    repositories.ItemRepository
	VehicleRepo repositories.VehicleRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string
}

func (s CatalogService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CatalogService) items() repositories.ItemRepository {
	if s.ItemRepo.DB != nil {
		return s.ItemRepo
	}
	return repositories.ItemRepository{DB: s.db()}
}

func (s CatalogService) vehicles() repositories.VehicleRepository {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepository{DB: s.db()}
}

func (s CatalogService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

// PagedItems mirrors the historical list envelope.
type PagedItems struct {
	Items       []models.Item `json:"items"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalItems  int           `json:"totalItems"`
}

type PagedVehicles struct {
	Vehicles      []models.Vehicle `json:"vehicles"`
	CurrentPage   int              `json:"currentPage"`
	TotalPages    int              `json:"totalPages"`
	TotalVehicles int              `json:"totalVehicles"`
}

const defaultPageSize = 12

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}

func (s CatalogService) CreateItem(it models.Item) (models.Item, error) {
	if strings.TrimSpace(it.Brand) == "" || strings.TrimSpace(it.Model) == "" || it.PricePerHour <= 0 {
		return models.Item{}, domain.ValidationError{Msg: "brand, model, dan price wajib diisi"}
	}

	id, err := s.items().Create(it)
	if err != nil {
		return models.Item{}, domain.InternalError{Err: err}
	}

	created, err := s.items().GetByID(id)
	if err != nil {
		return models.Item{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "catalog", "create_item", fmt.Sprintf("item_id=%d created_by=%d", id, it.CreatedBy))
	return created, nil
}

func (s CatalogService) GetItem(id int64) (models.Item, error) {
	it, err := s.items().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, domain.NotFoundError{Resource: "item", Err: err}
		}
		return models.Item{}, domain.InternalError{Err: err}
	}
	return it, nil
}

func (s CatalogService) ListItems(page, limit int) (PagedItems, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.items().List(page, limit)
	if err != nil {
		return PagedItems{}, domain.InternalError{Err: err}
	}
	return PagedItems{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalItems:  total,
	}, nil
}

func (s CatalogService) ListItemsByOwner(userID int64) ([]models.Item, error) {
	items, err := s.items().ListByOwner(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return items, nil
}

func (s CatalogService) UpdateItem(id int64, patch models.ItemUpdate) (models.Item, error) {
	if err := s.items().Update(id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, domain.NotFoundError{Resource: "item", Err: err}
		}
		return models.Item{}, domain.InternalError{Err: err}
	}
	return s.GetItem(id)
}

// DeleteItem refuses to orphan booking history: any referencing booking,
// whatever its status, blocks the delete.
func (s CatalogService) DeleteItem(id int64) error {
	n, err := s.bookings().CountForRentable("item", id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n > 0 {
		return domain.ConflictError{Resource: "item", Msg: "masih ada booking yang mereferensikan item ini"}
	}

	if err := s.items().Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "item", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "catalog", "delete_item", fmt.Sprintf("item_id=%d", id))
	return nil
}

func (s CatalogService) CreateVehicle(v models.Vehicle) (models.Vehicle, error) {
	if strings.TrimSpace(v.Type) == "" || strings.TrimSpace(v.Brand) == "" || v.PricePerHour <= 0 {
		return models.Vehicle{}, domain.ValidationError{Msg: "type, brand, dan pricePerHour wajib diisi"}
	}
	switch strings.ToLower(strings.TrimSpace(v.Type)) {
	case "car", "bike", "bicycle":
	default:
		return models.Vehicle{}, domain.ValidationError{Field: "type", Msg: "harus salah satu dari car, bike, bicycle"}
	}

	id, err := s.vehicles().Create(v)
	if err != nil {
		return models.Vehicle{}, domain.InternalError{Err: err}
	}

	created, err := s.vehicles().GetByID(id)
	if err != nil {
		return models.Vehicle{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "catalog", "create_vehicle", fmt.Sprintf("vehicle_id=%d created_by=%d", id, v.CreatedBy))
	return created, nil
}

func (s CatalogService) GetVehicle(id int64) (models.Vehicle, error) {
	v, err := s.vehicles().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return models.Vehicle{}, domain.InternalError{Err: err}
	}
	return v, nil
}

func (s CatalogService) ListVehicles(page, limit int) (PagedVehicles, error) {
	page, limit = normalizePage(page, limit)
	vehicles, total, err := s.vehicles().List(page, limit)
	if err != nil {
		return PagedVehicles{}, domain.InternalError{Err: err}
	}
	return PagedVehicles{
		Vehicles:      vehicles,
		CurrentPage:   page,
		TotalPages:    totalPages(total, limit),
		TotalVehicles: total,
	}, nil
}

func (s CatalogService) UpdateVehicle(id int64, patch models.VehicleUpdate) (models.Vehicle, error) {
	if err := s.vehicles().Update(id, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return models.Vehicle{}, domain.InternalError{Err: err}
	}
	return s.GetVehicle(id)
}

func (s CatalogService) DeleteVehicle(id int64) error {
	n, err := s.bookings().CountForRentable("vehicle", id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n > 0 {
		return domain.ConflictError{Resource: "vehicle", Msg: "masih ada booking yang mereferensikan vehicle ini"}
	}

	if err := s.vehicles().Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "catalog", "delete_vehicle", fmt.Sprintf("vehicle_id=%d", id))
	return nil
}
