package dbmodels

// Relationship pairs exactly two users. Membership is immutable for
// this subsystem; rows are written by the profile service and only
// read here.
type Relationship struct {
	ID      string `json:"id" gorm:"primaryKey"`
	User1ID string `json:"user1Id" gorm:"index"`
	User2ID string `json:"user2Id" gorm:"index"`
}

// PartnerOf returns the other member of the relationship. Callers only
// invoke it with an id known to be a member.
func (r *Relationship) PartnerOf(userID string) string {
	if userID == r.User1ID {
		return r.User2ID
	}
	return r.User1ID
}

func (r *Relationship) MemberIDs() []string {
	return []string{r.User1ID, r.User2ID}
}
