package portfolio

import "time"

// Project is one portfolio entry on the public site. Optional columns are
// pointers so a partial update can tell "absent" from "set".
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  *string   `json:"description,omitempty"`
	Category     string    `gorm:"size:100;not null" json:"category"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	ProjectURL   *string   `json:"projectUrl,omitempty"`
	Technologies *string   `json:"technologies,omitempty"`
	Order        int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Project) TableName() string {
	return "portfolio_projects"
}
