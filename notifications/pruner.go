package notifications

import (
	"sync"

	"k8s.io/klog/v2"
)

// PruneTokens removes every failed token from each user holding it.
// Removals run concurrently and independently; a failed removal is
// logged and left for the next failed send, since removal is
// idempotent and a stale token only costs one more rejected push.
func PruneTokens(store UserStore, owners map[string][]string, failedTokens []string) {
	var wg sync.WaitGroup
	for _, token := range failedTokens {
		for _, userID := range owners[token] {
			wg.Add(1)
			go func(userID, token string) {
				defer wg.Done()
				if err := store.RemoveToken(userID, token); err != nil {
					klog.Errorf("Error pruning token from user %s: %v", userID, err)
					return
				}
				klog.Infof("Pruned dead token from user %s", userID)
			}(userID, token)
		}
	}
	wg.Wait()
}
