package authz_test

import (
	"errors"
	"strings"
	"testing"

	"worktrack/tracker-api/internal/domain/authz"
)

type stubResource struct{ name string }

// stubRequirement answers every resource with a fixed result; applicable
// toggles CanValidate.
type stubRequirement struct {
	applicable bool
	result     authz.RequirementResult
}

func (r *stubRequirement) CanValidate(_ authz.Operation, _ any) bool {
	return r.applicable
}

func (r *stubRequirement) Validate(_ *authz.Principal, _ authz.Operation, _ any) authz.RequirementResult {
	return r.result
}

func TestEngine_AuthorizeResource(t *testing.T) {
	principal := &authz.Principal{ID: "u1", Roles: []string{authz.RoleUser}}

	tests := []struct {
		name         string
		requirements []authz.ResourceRequirement
		wantAllowed  bool
		wantReasons  []string
	}{
		{
			name:         "no requirements allows",
			requirements: nil,
			wantAllowed:  true,
		},
		{
			name: "no applicable requirement allows",
			requirements: []authz.ResourceRequirement{
				&stubRequirement{applicable: false, result: authz.Failed("never reached")},
			},
			wantAllowed: true,
		},
		{
			name: "succeed short-circuits later fail",
			requirements: []authz.ResourceRequirement{
				&stubRequirement{applicable: true, result: authz.Succeed},
				&stubRequirement{applicable: true, result: authz.Failed("too late")},
			},
			wantAllowed: true,
		},
		{
			name: "fail short-circuits with its messages",
			requirements: []authz.ResourceRequirement{
				&stubRequirement{applicable: true, result: authz.Failed("first reason", "second reason")},
				&stubRequirement{applicable: true, result: authz.Succeed},
			},
			wantAllowed: false,
			wantReasons: []string{"first reason", "second reason"},
		},
		{
			name: "all skip denies without reasons",
			requirements: []authz.ResourceRequirement{
				&stubRequirement{applicable: true, result: authz.Skip},
				&stubRequirement{applicable: true, result: authz.Skip},
			},
			wantAllowed: false,
		},
		{
			name: "skip then succeed allows",
			requirements: []authz.ResourceRequirement{
				&stubRequirement{applicable: true, result: authz.Skip},
				&stubRequirement{applicable: true, result: authz.Succeed},
			},
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := authz.NewEngine(tt.requirements, nil)
			err := engine.AuthorizeResource(principal, authz.OperationRead, &stubResource{name: "r"})
			if tt.wantAllowed {
				if err != nil {
					t.Fatalf("AuthorizeResource() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("AuthorizeResource() = nil, want denial")
			}
			var denial *authz.Error
			if !errors.As(err, &denial) {
				t.Fatalf("AuthorizeResource() error type = %T, want *authz.Error", err)
			}
			if len(tt.wantReasons) > 0 {
				want := strings.Join(tt.wantReasons, "\n")
				if denial.Error() != want {
					t.Errorf("denial message = %q, want %q", denial.Error(), want)
				}
			}
		})
	}
}

type stubTypeRequirement struct {
	applicable bool
	result     authz.RequirementResult
}

func (r *stubTypeRequirement) CanValidate(_ authz.Operation, _ authz.ResourceType) bool {
	return r.applicable
}

func (r *stubTypeRequirement) Validate(_ *authz.Principal, _ authz.Operation, _ authz.ResourceType) authz.RequirementResult {
	return r.result
}

func TestEngine_AuthorizeResourceType(t *testing.T) {
	principal := &authz.Principal{ID: "u1", Roles: []string{authz.RoleUser}}

	tests := []struct {
		name         string
		requirements []authz.ResourceTypeRequirement
		wantAllowed  bool
	}{
		{
			name:         "no requirements allows",
			requirements: nil,
			wantAllowed:  true,
		},
		{
			name: "fail denies",
			requirements: []authz.ResourceTypeRequirement{
				&stubTypeRequirement{applicable: true, result: authz.Failed("denied")},
			},
			wantAllowed: false,
		},
		{
			name: "succeed allows",
			requirements: []authz.ResourceTypeRequirement{
				&stubTypeRequirement{applicable: true, result: authz.Succeed},
			},
			wantAllowed: true,
		},
		{
			name: "all skip denies",
			requirements: []authz.ResourceTypeRequirement{
				&stubTypeRequirement{applicable: true, result: authz.Skip},
			},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := authz.NewEngine(nil, tt.requirements)
			err := engine.AuthorizeResourceType(principal, authz.OperationRead, authz.ResourceTimeEntry)
			if tt.wantAllowed && err != nil {
				t.Fatalf("AuthorizeResourceType() = %v, want nil", err)
			}
			if !tt.wantAllowed && err == nil {
				t.Fatal("AuthorizeResourceType() = nil, want denial")
			}
		})
	}
}

func TestPrincipal_HasRole(t *testing.T) {
	var nobody *authz.Principal
	if nobody.HasRole(authz.RoleAdmin) {
		t.Error("nil principal should hold no roles")
	}

	p := &authz.Principal{Roles: []string{authz.RoleUser, authz.RoleUserManager}}
	if !p.HasRole(authz.RoleUserManager) {
		t.Error("HasRole(USER MANAGER) = false, want true")
	}
	if p.HasRole(authz.RoleAdmin) {
		t.Error("HasRole(ADMIN) = true, want false")
	}
}
