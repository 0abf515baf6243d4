package consultation

import "time"

// Consultation is a booking inquiry submitted from the public site.
type Consultation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Email       string    `gorm:"size:320;not null" json:"email"`
	ProjectType string    `gorm:"size:100" json:"projectType,omitempty"`
	Budget      string    `gorm:"size:100" json:"budget,omitempty"`
	Message     string    `gorm:"not null" json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
