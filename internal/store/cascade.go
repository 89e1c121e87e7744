package store

import (
	"github.com/gdg-garage/tourism-api/internal/models"
	"gorm.io/gorm"
)

func cascadeBookings(tx *gorm.DB, ids []uint) error {
	return tx.Where("booking_id IN ?", ids).Delete(&models.BookingHistory{}).Error
}

func cascadeHotels(tx *gorm.DB, ids []uint) error {
	bookings := tx.Session(&gorm.Session{NewDB: true}).Model(&models.Booking{}).Select("id").Where("hotel_id IN ?", ids)
	if err := tx.Where("booking_id IN (?)", bookings).Delete(&models.BookingHistory{}).Error; err != nil {
		return err
	}
	if err := tx.Where("hotel_id IN ?", ids).Delete(&models.Booking{}).Error; err != nil {
		return err
	}
	return tx.Where("hotel_id IN ?", ids).Delete(&models.Review{}).Error
}

func cascadeSites(tx *gorm.DB, ids []uint) error {
	var hotelIDs []uint
	if err := tx.Model(&models.Hotel{}).Where("site_id IN ?", ids).Pluck("id", &hotelIDs).Error; err != nil {
		return err
	}
	if len(hotelIDs) > 0 {
		if err := cascadeHotels(tx, hotelIDs); err != nil {
			return err
		}
		if err := tx.Where("id IN ?", hotelIDs).Delete(&models.Hotel{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("site_id IN ?", ids).Delete(&models.Review{}).Error; err != nil {
		return err
	}
	return tx.Where("site_id IN ?", ids).Delete(&models.Favorite{}).Error
}

func cascadeUsers(tx *gorm.DB, ids []uint) error {
	for _, m := range []any{&models.BookingHistory{}, &models.Booking{}, &models.Review{}, &models.Favorite{}, &models.RefreshToken{}} {
		if err := tx.Where("user_id IN ?", ids).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
