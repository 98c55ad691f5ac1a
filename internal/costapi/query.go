package costapi

import (
	"net/url"
	"strconv"
	"strings"
)

// appendParam adds value under key, skipping empty scalars entirely and
// serialising slices as repeated keys without their empty elements.
func appendParam(q url.Values, key string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if strings.TrimSpace(v) != "" {
			q.Set(key, v)
		}
	case *string:
		if v != nil {
			appendParam(q, key, *v)
		}
	case int:
		q.Set(key, strconv.Itoa(v))
	case int64:
		q.Set(key, strconv.FormatInt(v, 10))
	case *int:
		if v != nil {
			appendParam(q, key, *v)
		}
	case float64:
		q.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
	case *float64:
		if v != nil {
			appendParam(q, key, *v)
		}
	case bool:
		q.Set(key, strconv.FormatBool(v))
	case *bool:
		if v != nil {
			appendParam(q, key, *v)
		}
	case []int64:
		for _, item := range v {
			if item > 0 {
				q.Add(key, strconv.FormatInt(item, 10))
			}
		}
	case []string:
		for _, item := range v {
			if strings.TrimSpace(item) != "" {
				q.Add(key, item)
			}
		}
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
