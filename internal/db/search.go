package db

import "strings"

// tagEscaper escapes characters with special meaning in FT.SEARCH tag queries.
var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

// EscapeTag escapes a value for use inside an FT.SEARCH tag filter.
func EscapeTag(value string) string {
	return tagEscaper.Replace(value)
}

// TagFilter restricts a search to documents whose tag field equals one of
// the values (OR). Multiple filters are ANDed together.
type TagFilter struct {
	Key    string
	Values []string
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Tags         []TagFilter // ANDed pre-filter, empty means match all
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
