package ai

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"
)

// Fingerprint derives the cache key for a generation request. The content
// digest ignores whitespace differences and the parameter digest ignores
// key order, so semantically identical requests collide.
func Fingerprint(op Operation, content string, params map[string]string) string {
	contentSum := md5.Sum([]byte(collapseWhitespace(content)))
	paramsSum := md5.Sum([]byte(canonicalParams(params)))
	return fmt.Sprintf("%s:%x:%x", op, contentSum[:8], paramsSum[:4])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func canonicalParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.TrimSpace(params[k]))
	}
	return strings.Join(parts, "&")
}
