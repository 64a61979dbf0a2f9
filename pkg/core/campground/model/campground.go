package model

import (
	"time"

	"gorm.io/gorm"

	usermodel "yelpcamp/pkg/core/user/model"
)

// Campground 营地条目，OwnerID 可为空：早于所有权的记录没有所有者
type Campground struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(250);not null"`
	Image       string          `gorm:"type:varchar(500);not null"`
	Description string          `gorm:"type:text;not null"`
	PostedAt    time.Time       `gorm:"not null"`
	OwnerID     *int64          `gorm:"index"`
	Owner       *usermodel.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
}

func (Campground) TableName() string {
	return "campgrounds"
}

// OwnedBy userID 是否为营地所有者
func (c Campground) OwnedBy(userID int64) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&usermodel.User{}, &Campground{})
}
