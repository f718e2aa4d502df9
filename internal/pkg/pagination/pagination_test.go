package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func queryFor(t *testing.T, rawQuery string) Query {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		page     int
		size     int
	}{
		{"defaults", "", 1, DefaultSize},
		{"explicit", "page=3&size=50", 3, 50},
		{"zero page ignored", "page=0", 1, DefaultSize},
		{"negative size ignored", "size=-5", 1, DefaultSize},
		{"non-numeric ignored", "page=abc&size=xyz", 1, DefaultSize},
		{"size clamped", "size=500", 1, MaxSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queryFor(t, tt.rawQuery)
			if q.Page != tt.page || q.Size != tt.size {
				t.Fatalf("got page=%d size=%d, want page=%d size=%d", q.Page, q.Size, tt.page, tt.size)
			}
		})
	}
}

func TestQueryOffset(t *testing.T) {
	q := Query{Page: 3, Size: 20}
	if got := q.Offset(); got != 40 {
		t.Fatalf("offset = %d, want 40", got)
	}
	if got := q.Limit(); got != 20 {
		t.Fatalf("limit = %d, want 20", got)
	}
}
