package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt64ID parse path param id (BIGSERIAL), chỉ nhận số dương
func ParseInt64ID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// ParseInt64IDs dùng cho checkbox nhiều giá trị (vd categories trong form)
// Giá trị trùng lặp bị bỏ qua, giữ thứ tự xuất hiện
func ParseInt64IDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	seen := make(map[int64]struct{}, len(values))

	for _, v := range values {
		id, err := ParseInt64ID(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
