package repository

import (
	"strings"
)

// likeEscape is appended to every LIKE built from containsPattern. A backslash
// would need different quoting in MySQL and PostgreSQL.
const likeEscape = " ESCAPE '!'"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lower-cased LIKE pattern. Wildcards typed by the
// caller are matched literally.
func containsPattern(search string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}
