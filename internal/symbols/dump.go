package symbols

import "github.com/maruel/natural"

// SortedNames returns a scope's own names sorted with natural ordering, so
// debug dumps and the CLI's dump-symbols subcommand list "Method2" before
// "Method10" instead of lexicographically between them.
func SortedNames(s *Scope) []string {
	names := s.Names()
	natural.Sort(names)
	return names
}
