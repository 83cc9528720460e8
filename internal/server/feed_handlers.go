package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeedPage handles GET /api/feed
//
// Query parameters: limit (optional page size, omitted means unbounded),
// before and after (exclusive Unix-millisecond bounds). The response carries
// nextBefore, the timestamp watermark for fetching the following page.
func (s *Server) GetFeedPage(c *fiber.Ctx) error {
	limit, err := parseOptionalInt(c, "limit")
	if err != nil {
		return nil
	}
	before, err := parseOptionalInt64(c, "before")
	if err != nil {
		return nil
	}
	after, err := parseOptionalInt64(c, "after")
	if err != nil {
		return nil
	}

	posts, err := s.feedService.GetPostsPaginated(c.Context(), limit, before, after)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := fiber.Map{
		"posts": posts,
		"count": len(posts),
	}
	if len(posts) > 0 {
		resp["nextBefore"] = posts[len(posts)-1].Timestamp
	}
	return c.JSON(resp)
}

// GetNewPostsCount handles GET /api/feed/new-count
//
// Returns how many posts are strictly newer than the `since` watermark.
// Clients without a watermark get zero.
func (s *Server) GetNewPostsCount(c *fiber.Ctx) error {
	since, err := parseOptionalInt64(c, "since")
	if err != nil {
		return nil
	}

	count, err := s.feedService.HasNewPostsSince(c.Context(), since)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"count": count,
	})
}
