package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
)

// DatabaseStore persists everything through GORM on PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given GORM connection
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Listing operations

func (d *DatabaseStore) CreateListing(listing *models.Listing) (*models.Listing, error) {
	if err := d.db.Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

func (d *DatabaseStore) GetListing(id string) (*models.Listing, error) {
	var listing models.Listing
	err := d.db.First(&listing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (d *DatabaseStore) GetAllListings() ([]*models.Listing, error) {
	var listings []*models.Listing
	err := d.db.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (d *DatabaseStore) GetListingsByUser(userID string) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (d *DatabaseStore) UpdateListing(listing *models.Listing) error {
	res := d.db.Model(&models.Listing{}).Where("id = ?", listing.ID).Select("*").
		Omit("id", "user_id", "created_at").Updates(listing)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DatabaseStore) UpdateListingStatus(id string, status string) error {
	res := d.db.Model(&models.Listing{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DatabaseStore) DeleteListing(id string) error {
	res := d.db.Delete(&models.Listing{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// User operations

func (d *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := d.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (d *DatabaseStore) GetUser(id string) (*models.User, error) {
	var user models.User
	err := d.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DatabaseStore) UpdateUser(user *models.User) error {
	res := d.db.Model(&models.User{}).Where("id = ?", user.ID).
		Omit("id", "created_at").Updates(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// OTP operations

func (d *DatabaseStore) ReplaceActiveOTP(otp *models.OTP) (*models.OTP, error) {
	// Supersede and insert in one transaction so a failed insert does not
	// leave the user with zero valid codes committed halfway
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OTP{}).
			Where("user_id = ? AND used = ?", otp.UserID, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
	if err != nil {
		return nil, err
	}
	return otp, nil
}

func (d *DatabaseStore) ConsumeOTP(userID, phone, code string, now time.Time) (*models.OTP, error) {
	var otp models.OTP
	err := d.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND phone = ? AND code = ? AND used = ? AND expires_at > ?",
				userID, phone, code, false, now).
			Order("created_at DESC").
			First(&otp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		// Conditional on used=false so two concurrent verifications cannot
		// both consume the same code
		res := tx.Model(&models.OTP{}).
			Where("id = ? AND used = ?", otp.ID, false).
			Updates(map[string]interface{}{"used": true, "verified_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		otp.Used = true
		otp.VerifiedAt = &now

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"phone": phone, "phone_verified": true}).Error
	})
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (d *DatabaseStore) GetOTPsByUser(userID string) ([]*models.OTP, error) {
	var otps []*models.OTP
	err := d.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&otps).Error
	return otps, err
}

func (d *DatabaseStore) DeleteExpiredOTPs(before time.Time) (int64, error) {
	res := d.db.Where("expires_at < ?", before).Delete(&models.OTP{})
	return res.RowsAffected, res.Error
}
