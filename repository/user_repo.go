package repository

import (
	"encoding/json"
	"errors"

	"github.com/adilemreee/sevgilim-sub001/models"
	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	"github.com/adilemreee/sevgilim-sub001/utils"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

// UserRepo reads user records and prunes dead tokens from them.
type UserRepo struct {
	DB *gorm.DB
}

// Get returns the normalized user, or (nil, nil) when missing.
func (repo *UserRepo) Get(id string) (*models.User, error) {
	var row dbmodels.User
	if err := repo.DB.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			klog.V(3).Infof("User %s not found", id)
			return nil, nil
		}
		return nil, err
	}
	return &models.User{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Tokens:      NormalizeTokens(row.Tokens),
	}, nil
}

// NormalizeTokens accepts the encodings the tokens column has carried
// over client versions: a JSON array, a JSON string, or a bare legacy
// token value. The result is deduplicated, insertion order preserved.
func NormalizeTokens(raw string) []string {
	if raw == "" || raw == "null" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return utils.UniqueStrings(list)
	}
	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return utils.UniqueStrings([]string{single})
	}
	// Oldest rows hold the bare token without any JSON encoding
	return []string{raw}
}

// RemoveToken deletes one token from the user's token set. Removing a
// token the user does not hold is a no-op, which keeps pruning safe to
// repeat.
func (repo *UserRepo) RemoveToken(userID string, token string) error {
	var row dbmodels.User
	if err := repo.DB.Where("id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	tokens := NormalizeTokens(row.Tokens)
	kept := make([]string, 0, len(tokens))
	for _, tkn := range tokens {
		if tkn != token {
			kept = append(kept, tkn)
		}
	}
	if len(kept) == len(tokens) {
		return nil
	}

	encoded, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return repo.DB.Model(&dbmodels.User{}).Where("id = ?", userID).Update("tokens", string(encoded)).Error
}
