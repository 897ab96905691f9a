package services

import (
	"errors"
	"fmt"

	"salon_booking_go/models"

	"gorm.io/gorm"
)

// ListServices fetches all salon services ordered by category.
func ListServices(db *gorm.DB) ([]models.Service, error) {
	var services []models.Service
	err := db.Order("category asc, duration_min asc").Find(&services).Error
	if err != nil {
		return nil, internalErr("list services", err)
	}
	return services, nil
}

// GetServiceByID fetches a single salon service.
func GetServiceByID(db *gorm.DB, id string) (*models.Service, error) {
	var service models.Service
	err := db.First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: service %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, internalErr("get service", err)
	}
	return &service, nil
}

// CreateService adds a new salon service after validating its category
// and duration.
func CreateService(db *gorm.DB, service *models.Service) error {
	if !models.IsValidServiceCategory(service.Category) {
		return fmt.Errorf("%w: invalid service category %q", ErrInvalidRequest, service.Category)
	}
	if service.DurationMin <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
	}
	service.Description = SanitizeTextPtr(service.Description)
	if err := db.Create(service).Error; err != nil {
		return internalErr("create service", err)
	}
	return nil
}

// ServiceUpdate carries the mutable service fields; nil means leave unchanged.
type ServiceUpdate struct {
	Category    *string
	DurationMin *int
	Price       *float64
	Description *string
}

// UpdateService updates a salon service. Changing the duration affects
// only future bookings; already-booked runs keep their slots.
func UpdateService(db *gorm.DB, id string, update ServiceUpdate) (*models.Service, error) {
	service, err := GetServiceByID(db, id)
	if err != nil {
		return nil, err
	}

	if update.Category != nil {
		if !models.IsValidServiceCategory(*update.Category) {
			return nil, fmt.Errorf("%w: invalid service category %q", ErrInvalidRequest, *update.Category)
		}
		service.Category = *update.Category
	}
	if update.DurationMin != nil {
		if *update.DurationMin <= 0 {
			return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
		}
		service.DurationMin = *update.DurationMin
	}
	if update.Price != nil {
		service.Price = update.Price
	}
	if update.Description != nil {
		service.Description = SanitizeTextPtr(update.Description)
	}

	if err := db.Save(service).Error; err != nil {
		return nil, internalErr("update service", err)
	}
	return service, nil
}

// DeleteService removes a salon service unless appointments reference it.
func DeleteService(db *gorm.DB, id string) error {
	service, err := GetServiceByID(db, id)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Appointment{}).Where("service_id = ?", id).Count(&count).Error; err != nil {
		return internalErr("delete service: count appointments", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d appointments reference this service", ErrConflict, count)
	}

	if err := db.Delete(service).Error; err != nil {
		return internalErr("delete service", err)
	}
	return nil
}

// SeedDefaultServices inserts the salon's service catalogue when the
// table is empty, so a fresh deployment is bookable out of the box.
func SeedDefaultServices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return internalErr("seed services: count", err)
	}
	if count > 0 {
		return nil
	}

	price := func(v float64) *float64 { return &v }
	defaults := []models.Service{
		{Category: models.ServiceCategoryCoiffure, DurationMin: 60, Price: price(35)},
		{Category: models.ServiceCategoryTattouage, DurationMin: 120, Price: price(120)},
		{Category: models.ServiceCategoryPiercing, DurationMin: 60, Price: price(40)},
		{Category: models.ServiceCategoryCils, DurationMin: 60, Price: price(50)},
	}
	if err := db.Create(&defaults).Error; err != nil {
		return internalErr("seed services", err)
	}
	return nil
}
