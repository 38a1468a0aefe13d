package validate

import "sort"

// Modifier rules change how other rules apply rather than checking values
// themselves.
var modifierRules = []string{"nullable", "sometimes"}

// KnownRule reports whether name is a rule the validator evaluates. Unknown
// names are skipped at evaluation time, so lint tooling is where typos get
// caught.
func KnownRule(name string) bool {
	for _, modifier := range modifierRules {
		if name == modifier {
			return true
		}
	}
	_, ok := checks[name]
	return ok
}

// RuleNames returns every evaluated rule name, modifiers included, in sorted
// order.
func RuleNames() []string {
	names := make([]string, 0, len(checks)+len(modifierRules))
	for name := range checks {
		names = append(names, name)
	}
	names = append(names, modifierRules...)
	sort.Strings(names)
	return names
}
