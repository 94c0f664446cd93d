// Package pagination implements opaque page-token pagination for list endpoints.
package pagination

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// Pagination carries the client-supplied paging parameters.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// PageInfo is embedded in list responses.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	TotalSize     int64  `json:"total_size"`
}

// Limit clamps the requested page size into the allowed range.
func Limit(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// DecodeToken converts an opaque page token back into an offset.
// Malformed tokens are read as offset 0 rather than rejected.
func DecodeToken(token string) int {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// EncodeToken produces the opaque token for the next page, or "" when the
// listing is exhausted.
func EncodeToken(offset int, total int64) string {
	if offset < 0 || int64(offset) >= total {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}
