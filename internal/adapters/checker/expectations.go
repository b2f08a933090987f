package checker

import (
	"fmt"
	"regexp"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

var (
	componentNameRe = regexp.MustCompile(`(?i)component\s+named\s+(\w+)`)
	methodNameRe    = regexp.MustCompile(`(?i)method\s+(\w+)`)
)

// expectations are the structural promises a narrative makes about its code,
// classes and methods the prose names explicitly.
type expectations struct {
	classes []string
	methods []string
}

// deriveExpectations scans a narrative for phrases that pin down structure,
// such as "component named Cart" or "method addItem".
func deriveExpectations(narrative string) expectations {
	var exp expectations
	for _, m := range componentNameRe.FindAllStringSubmatch(narrative, -1) {
		exp.classes = append(exp.classes, m[1])
	}
	for _, m := range methodNameRe.FindAllStringSubmatch(narrative, -1) {
		exp.methods = append(exp.methods, m[1])
	}
	return exp
}

// check reports a diagnostic for every expectation the code does not meet.
func (e expectations) check(code string) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, class := range e.classes {
		re := regexp.MustCompile(`class\s+` + regexp.QuoteMeta(class) + `\b`)
		if !re.MatchString(code) {
			diags = append(diags, semanticDiagnostic(fmt.Sprintf("Expected class '%s' not found in code", class)))
		}
	}
	for _, method := range e.methods {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(method) + `\s*\(`)
		if !re.MatchString(code) {
			diags = append(diags, semanticDiagnostic(fmt.Sprintf("Expected method '%s' not found in code", method)))
		}
	}
	return diags
}

func semanticDiagnostic(message string) domain.Diagnostic {
	return domain.Diagnostic{File: artifactFileName, Line: 1, Char: 1, Message: message}
}
