package models

import (
	"time"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// Member belongs to exactly one team. The (name, team) index is
// case-sensitive on postgres and sqlite, while joins match names
// case-insensitively through NameKey.
type Member struct {
	ID        uint64    `gorm:"primarykey" json:"_id"`
	MemberID  string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"memberId"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_members_name_team,priority:1" json:"name"`
	NameKey   string    `gorm:"type:varchar(200);not null;default:'';index:idx_members_team_name_key,priority:2" json:"-"`
	TeamID    string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_members_name_team,priority:2;index:idx_members_team_name_key,priority:1" json:"teamId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FoldName returns the Unicode case-folded form of a member name.
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// BeforeSave keeps NameKey in step with Name.
func (m *Member) BeforeSave(*gorm.DB) error {
	m.NameKey = FoldName(m.Name)
	return nil
}
