package adapthttp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) alertHeaders(w http.ResponseWriter, entity, action, param string) {
	w.Header().Set("X-"+s.appName+"-alert", s.appName+"."+entity+"."+action)
	w.Header().Set("X-"+s.appName+"-params", param)
}

func (s *Server) failureHeaders(w http.ResponseWriter, entity, key string) {
	w.Header().Set("X-"+s.appName+"-error", "error."+key)
	w.Header().Set("X-"+s.appName+"-params", entity)
}

// paginationHeaders sets X-Total-Count and a Link header with next, prev,
// last and first relations.
func paginationHeaders(w http.ResponseWriter, base string, number, size int, total int64, totalPages int) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))

	uri := func(page int) string {
		return fmt.Sprintf("<%s?page=%d&size=%d>", base, page, size)
	}
	var links []string
	if number+1 < totalPages {
		links = append(links, uri(number+1)+`; rel="next"`)
	}
	if number > 0 {
		links = append(links, uri(number-1)+`; rel="prev"`)
	}
	last := 0
	if totalPages > 0 {
		last = totalPages - 1
	}
	links = append(links, uri(last)+`; rel="last"`, uri(0)+`; rel="first"`)
	w.Header().Set("Link", strings.Join(links, ","))
}
