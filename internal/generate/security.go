package generate

import (
	"fmt"
	"strings"

	"github.com/polyforge/polyforge/internal/spec"
)

// securityArtifact emits one artifact per compliance rule so every
// declared rule is visibly reflected in the output bundle. The security
// validation axis checks for exactly these artifacts.
func securityArtifact(language string, rule spec.ComplianceRule) (string, string) {
	name := pascal(rule.Category)
	scope := "all entities"
	if len(rule.AppliesTo) > 0 {
		scope = strings.Join(rule.AppliesTo, ", ")
	}

	switch language {
	case "go":
		content := fmt.Sprintf(`// Compliance control %s (%s)
// Scope: %s
package security

type %sControl struct {
	RuleID string
}

func New%sControl() *%sControl {
	return &%sControl{RuleID: %q}
}
`, rule.ID, rule.Category, scope, name, name, name, name, rule.ID)
		return fmt.Sprintf("internal/security/%s.go", snake(rule.Category)), content

	case "python":
		content := fmt.Sprintf(`"""Compliance control %s (%s).

Scope: %s
"""

RULE_ID = %q
CATEGORY = %q
`, rule.ID, rule.Category, scope, rule.ID, rule.Category)
		return fmt.Sprintf("app/security/%s.py", snake(rule.Category)), content

	case "java":
		content := fmt.Sprintf(`// Compliance control %s (%s)
// Scope: %s
package com.app.security;

public final class %sControl {
    public static final String RULE_ID = %q;
}
`, rule.ID, rule.Category, scope, name, rule.ID)
		return fmt.Sprintf("src/main/java/com/app/security/%sControl.java", name), content

	case "swift":
		content := fmt.Sprintf(`// Compliance control %s (%s)
// Scope: %s
import Foundation

enum %sControl {
    static let ruleID = %q
}
`, rule.ID, rule.Category, scope, name, rule.ID)
		return fmt.Sprintf("Sources/App/Security/%sControl.swift", name), content

	case "kotlin":
		content := fmt.Sprintf(`// Compliance control %s (%s)
// Scope: %s
package com.app.security

object %sControl {
    const val RULE_ID = %q
}
`, rule.ID, rule.Category, scope, name, rule.ID)
		return fmt.Sprintf("app/src/main/java/com/app/security/%sControl.kt", name), content

	case "dart":
		content := fmt.Sprintf(`// Compliance control %s (%s)
// Scope: %s
class %sControl {
  static const ruleId = '%s';
}
`, rule.ID, rule.Category, scope, name, rule.ID)
		return fmt.Sprintf("lib/security/%s_control.dart", snake(rule.Category)), content

	default: // typescript and anything web-shaped
		content := fmt.Sprintf(`// Compliance control %s (%s)
// Scope: %s
export const %sControl = {
  ruleId: '%s',
  category: '%s',
} as const;
`, rule.ID, rule.Category, scope, name, rule.ID, rule.Category)
		return fmt.Sprintf("src/security/%sControl.ts", name), content
	}
}
