package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// Static implements ports.Generator with deterministic canned code. It keeps
// compile runs reproducible without network access, for offline use and for
// end-to-end tests.
type Static struct{}

var _ ports.Generator = (*Static)(nil)

// NewStatic creates the static generator.
func NewStatic() *Static {
	return &Static{}
}

// GenerateCode returns canned code for the token's kind with its name
// substituted, so name expectations derived from the narrative hold.
func (s *Static) GenerateCode(_ context.Context, req ports.GenerateRequest) (string, error) {
	name := displayName(req.TokenPath)
	switch req.Kind {
	case domain.KindScene:
		return sceneCode(name), nil
	case domain.KindComponent:
		return componentCode(name), nil
	default:
		return serviceCode(name), nil
	}
}

// FixCode returns the code unchanged.
func (s *Static) FixCode(_ context.Context, req ports.FixRequest) (string, error) {
	return req.Code, nil
}

// EvaluateCode reports a fixed score.
func (s *Static) EvaluateCode(_ context.Context, _ ports.EvaluateRequest) (ports.Evaluation, error) {
	return ports.Evaluation{Score: 10, Feedback: "static provider, not evaluated"}, nil
}

func sceneCode(name string) string {
	return fmt.Sprintf(`import { Component, OnInit } from '@angular/core';

@Component({
  selector: 'app-%[2]s',
  template: '<div class="%[2]s"><router-outlet></router-outlet></div>',
})
export class %[1]s implements OnInit {
  loading = false;

  ngOnInit(): void {
    this.loading = false;
  }
}`, name, kebabCase(name))
}

func componentCode(name string) string {
	return fmt.Sprintf(`import { Component } from '@angular/core';

@Component({
  selector: 'app-%[2]s',
  template: '<div>%[1]s</div>',
})
export class %[1]s {
}`, name, kebabCase(name))
}

func serviceCode(name string) string {
	return fmt.Sprintf(`import { Injectable } from '@angular/core';
import { Observable, of } from 'rxjs';

@Injectable({
  providedIn: 'root'
})
export class %sService {
  %s(): Observable<unknown> {
    return of(null);
  }
}`, upperFirst(name), name)
}

func kebabCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func upperFirst(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
