// Package attribution derives acquisition metadata from the inbound request
// at profile-creation time.
package attribution

import (
	"github.com/gin-gonic/gin"

	"member_portal_backend/internal/leads/domain"
)

// FromRequest extracts attribution from query parameters and the Referer
// header. Query parameters win over UTM fallbacks. Returns nil when the
// request carries no attribution at all, so profiles created without context
// stay free of an empty attribution record.
func FromRequest(c *gin.Context) *domain.AttributionData {
	data := &domain.AttributionData{
		ContentID: firstQuery(c, "content_id", "utm_content"),
		MemberID:  firstQuery(c, "member_id", "ref_member"),
		Platform:  firstQuery(c, "platform", "utm_source"),
		Referrer:  c.Request.Referer(),
	}

	if data.ContentID == "" && data.MemberID == "" && data.Platform == "" && data.Referrer == "" {
		return nil
	}
	return data
}

func firstQuery(c *gin.Context, names ...string) string {
	for _, name := range names {
		if value := c.Query(name); value != "" {
			return value
		}
	}
	return ""
}
