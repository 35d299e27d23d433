package dbmodels

import "time"

// User rows are owned by the profile service; this subsystem reads
// them and prunes dead tokens, nothing else. The tokens column has
// carried three encodings over client versions: a JSON array, a JSON
// string, or a bare legacy token value. repository.NormalizeTokens
// accepts all of them.
type User struct {
	ID          string `json:"id" gorm:"primaryKey"`
	DisplayName string `json:"display_name"`
	Tokens      string `json:"tokens"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
