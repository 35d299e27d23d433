package notifications

import (
	"sync"

	"github.com/adilemreee/sevgilim-sub001/models"
	"github.com/adilemreee/sevgilim-sub001/utils"
	"golang.org/x/exp/slices"
	"k8s.io/klog/v2"
)

// TokenSet is the flattened delivery view over a set of users. Owners
// maps each token back to the user ids holding it, which the pruner
// needs after a failed send.
type TokenSet struct {
	Tokens []string
	Owners map[string][]string
}

// LoadUsers batch-loads users by id. Ids are filtered and deduplicated
// first; loads run concurrently and a failed or missing load drops
// that id only, never the batch.
func LoadUsers(store UserStore, ids []string) map[string]*models.User {
	ids = utils.UniqueStrings(ids)
	users := make(map[string]*models.User, len(ids))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			user, err := store.Get(id)
			if err != nil {
				klog.Errorf("Error loading user %s: %v", id, err)
				return
			}
			if user == nil {
				return
			}
			mu.Lock()
			users[id] = user
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return users
}

// TokensFor flattens the users' tokens into an ordered-unique list
// plus the owner map. Order follows the input ids, then each user's
// token order.
func TokensFor(store UserStore, ids []string) TokenSet {
	users := LoadUsers(store, ids)
	set := TokenSet{Owners: map[string][]string{}}
	for _, id := range utils.UniqueStrings(ids) {
		user, ok := users[id]
		if !ok {
			continue
		}
		for _, token := range user.Tokens {
			if _, seen := set.Owners[token]; !seen {
				set.Tokens = append(set.Tokens, token)
			}
			if !slices.Contains(set.Owners[token], id) {
				set.Owners[token] = append(set.Owners[token], id)
			}
		}
	}
	return set
}
