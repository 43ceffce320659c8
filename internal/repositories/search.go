package repositories

import "strings"

// likeEscape goes after every LIKE built from containsPattern.
const likeEscape = `ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches query as a literal substring in a LIKE clause.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
