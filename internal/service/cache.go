package service

import (
	"log"

	"github.com/google/uuid"

	"scope-service/internal/infra/cache"
)

// invalidator centralizes the cache-invalidation protocol. Services call it
// after their transaction commits; a failed delete is logged and swallowed,
// because the cache is advisory and must never fail a business operation.
type invalidator struct {
	cache  cache.Store
	logger *log.Logger
}

func newInvalidator(store cache.Store, logger *log.Logger) *invalidator {
	return &invalidator{cache: store, logger: logger}
}

func (i *invalidator) delete(key string) {
	if err := i.cache.Delete(key); err != nil {
		i.logger.Printf("cache delete failed for %s: %v", key, err)
	}
}

// projectScoped drops the project detail entry and the owner's dashboard
// entry. Every project/scope-item/request/change-order mutation routes
// through this.
func (i *invalidator) projectScoped(projectID, userID uuid.UUID) {
	i.delete(cache.ProjectKey(projectID))
	i.delete(cache.DashboardKey(userID))
}

func (i *invalidator) shareLinks(projectID uuid.UUID) {
	i.delete(cache.ShareLinksKey(projectID))
}

func (i *invalidator) shareLink(linkID, projectID uuid.UUID) {
	i.delete(cache.ShareLinkKey(linkID))
	i.delete(cache.ShareLinksKey(projectID))
}
