package models

import "time"

// Team is created together with its leader and is immutable afterwards.
type Team struct {
	ID        uint64    `gorm:"primarykey" json:"_id"`
	TeamID    string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"teamId"`
	TeamName  string    `gorm:"type:varchar(100);not null" json:"teamName"`
	TeamCode  string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"teamCode"`
	LeaderID  string    `gorm:"type:varchar(36);not null" json:"leaderId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
