package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid is an offer on a task. It is never mutated after insertion.
type Bid struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"_id"`
	TaskID    string    `gorm:"type:varchar(36);not null;index:idx_bids_task_date,priority:1" json:"taskId"`
	UserEmail string    `gorm:"type:varchar(255);not null" json:"userEmail"`
	UserName  string    `gorm:"type:varchar(255)" json:"userName,omitempty"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Message   string    `gorm:"type:text" json:"message,omitempty"`
	Date      time.Time `gorm:"not null;index:idx_bids_task_date,priority:2,sort:desc" json:"date"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// IsPlacedBy reports whether email is the bidder.
func (b *Bid) IsPlacedBy(email string) bool {
	return email != "" && b.UserEmail == email
}
