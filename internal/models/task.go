package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Category    string    `gorm:"type:varchar(100);not null" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Deadline    time.Time `gorm:"not null;index" json:"deadline"`
	Budget      float64   `gorm:"not null" json:"budget"`
	UserEmail   string    `gorm:"type:varchar(255);not null;index" json:"userEmail"`
	UserName    string    `gorm:"type:varchar(255)" json:"userName"`
	BidsCount   int64     `gorm:"not null;default:0" json:"bidsCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not pick an ID.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsOwnedBy reports whether email is the task owner.
func (t *Task) IsOwnedBy(email string) bool {
	return email != "" && t.UserEmail == email
}
