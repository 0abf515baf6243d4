package testimonial

import "time"

// Testimonial is one client quote on the public site. Rating is 1-5 by
// convention; the data layer does not enforce the range.
type Testimonial struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClientName  string    `gorm:"size:255;not null" json:"clientName"`
	ClientRole  *string   `gorm:"size:255" json:"clientRole,omitempty"`
	ClientImage *string   `json:"clientImage,omitempty"`
	Content     string    `gorm:"not null" json:"content"`
	Rating      int       `gorm:"not null;default:5" json:"rating"`
	Order       int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
