package cache

import "github.com/google/uuid"

// Cache key builders. Invalidation and read paths must agree on these, so
// they live here rather than in individual services.

func ProjectKey(projectID uuid.UUID) string {
	return "project:" + projectID.String()
}

func DashboardKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}

func ShareLinkKey(linkID uuid.UUID) string {
	return "share-link:" + linkID.String()
}

func ShareLinksKey(projectID uuid.UUID) string {
	return "share-links:" + projectID.String()
}
