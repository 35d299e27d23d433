package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/adilemreee/sevgilim-sub001/database"
	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

const relationshipCacheTTL = 10 * time.Minute

// RelationshipRepo reads relationship records, with a redis
// read-through cache in front of the table. Relationships are
// effectively immutable so a short TTL is all the invalidation needed.
type RelationshipRepo struct {
	DB *gorm.DB
}

func relationshipCacheKey(id string) string {
	return "relationship:" + id
}

// Get returns the relationship, or (nil, nil) when no such id exists.
// Dangling references left behind by deleted data are expected, not
// exceptional.
func (repo *RelationshipRepo) Get(id string) (*dbmodels.Relationship, error) {
	if id == "" {
		return nil, nil
	}
	if cached, err := database.GetRedisDB().Get(relationshipCacheKey(id)); err == nil {
		var rel dbmodels.Relationship
		if err := json.Unmarshal([]byte(cached), &rel); err == nil {
			return &rel, nil
		}
	}

	var rel dbmodels.Relationship
	if err := repo.DB.Where("id = ?", id).First(&rel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			klog.V(3).Infof("Relationship %s not found", id)
			return nil, nil
		}
		return nil, err
	}

	if encoded, err := json.Marshal(&rel); err == nil {
		if err := database.GetRedisDB().Set(relationshipCacheKey(id), string(encoded), relationshipCacheTTL); err != nil {
			klog.V(3).Infof("Unable to cache relationship %s: %v", id, err)
		}
	}
	return &rel, nil
}
