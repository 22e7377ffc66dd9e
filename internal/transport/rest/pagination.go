package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/gofiber/fiber/v2"
)

const totalCountHeader = "X-Total-Count"

// parsePageRequest reads ?page=0&size=20&sort=field,desc; size is capped at the configured maximum.
func (ctrl *Controller) parsePageRequest(c *fiber.Ctx) (model.PageRequest, error) {
	pageRequest := model.PageRequest{
		Page: 0,
		Size: ctrl.cfg.HTTP.DefaultPageSize,
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return model.PageRequest{}, fiber.NewError(http.StatusBadRequest, "invalid page parameter")
		}
		pageRequest.Page = page
	}

	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return model.PageRequest{}, fiber.NewError(http.StatusBadRequest, "invalid size parameter")
		}
		pageRequest.Size = min(size, ctrl.cfg.HTTP.MaxPageSize)
	}

	for _, raw := range c.Context().QueryArgs().PeekMulti("sort") {
		field, direction, _ := strings.Cut(string(raw), ",")
		if field == "" {
			continue
		}
		pageRequest.Sort = append(pageRequest.Sort, model.SortOrder{
			Field: field,
			Desc:  strings.EqualFold(direction, "desc"),
		})
	}

	return pageRequest, nil
}

// setPaginationHeaders writes X-Total-Count and an RFC 5988 Link header with next, prev, last and first relations.
func setPaginationHeaders(c *fiber.Ctx, pageRequest model.PageRequest, total int64) {
	c.Set(totalCountHeader, strconv.FormatInt(total, 10))

	lastPage := 0
	if total > 0 {
		lastPage = int((total - 1) / int64(pageRequest.Size))
	}

	base := c.BaseURL() + c.Path()
	query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))

	link := func(page int, rel string) string {
		query.Set("page", strconv.Itoa(page))
		query.Set("size", strconv.Itoa(pageRequest.Size))
		return fmt.Sprintf(`<%s?%s>; rel="%s"`, base, query.Encode(), rel)
	}

	links := make([]string, 0, 4)
	if pageRequest.Page < lastPage {
		links = append(links, link(pageRequest.Page+1, "next"))
	}
	if pageRequest.Page > 0 {
		links = append(links, link(pageRequest.Page-1, "prev"))
	}
	links = append(links, link(lastPage, "last"), link(0, "first"))

	c.Set("Link", strings.Join(links, ","))
}
