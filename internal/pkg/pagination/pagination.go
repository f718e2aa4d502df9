package pagination

import (
	"strconv"

	"github.com/deepjyoti31/spec10x/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// DefaultSize suits insight and interview lists; clients page further
	// with ?page=N&size=M.
	DefaultSize = 20
	MaxSize     = 100
)

// Query holds validated pagination parameters.
type Query struct {
	Page int
	Size int
}

func (q Query) Offset() int { return (q.Page - 1) * q.Size }
func (q Query) Limit() int  { return q.Size }

// FromContext parses page/size query params, clamping out-of-range values.
func FromContext(c *gin.Context) Query {
	q := Query{Page: 1, Size: DefaultSize}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		q.Size = v
	}
	if q.Size > MaxSize {
		q.Size = MaxSize
	}
	return q
}

// Paginate counts the query, fetches one page into dest and returns the
// pagination metadata. An empty result set skips the page fetch.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	meta := response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		Size:        q.Size,
	}
	if total == 0 {
		*dest = []T{}
		return meta, nil
	}

	if err := db.Offset(q.Offset()).Limit(q.Limit()).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	meta.TotalPage = int((total + int64(q.Size) - 1) / int64(q.Size))
	meta.HasNextPage = q.Page < meta.TotalPage
	return meta, nil
}
