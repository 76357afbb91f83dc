package middleware

import "testing"

func TestMatchPath(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/", "/", true},
		{"/health", "/health", true},
		{"/health", "/healthz", false},
		{"/auth/*", "/auth/login", true},
		{"/auth/*", "/auth/refresh/extra", true},
		{"/auth/*", "/auth", false},
		{"/users/:id", "/users/17", true},
		{"/users/:id", "/users/17/verify-email", false},
		{"/users/:id/verify-email", "/users/17/verify-email", true},
		{"/bookings/:id/accept", "/bookings/3/accept", true},
		{"/bookings/:id/accept", "/bookings/3/reject", false},
		{"/services", "/services/5", false},
	}
	for _, tc := range cases {
		if got := MatchPath(tc.pattern, tc.path); got != tc.want {
			t.Errorf("MatchPath(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func TestMatchRule(t *testing.T) {
	cases := []struct {
		method     string
		path       string
		wantPublic bool
		wantRoles  []string
	}{
		{"GET", "/services", true, nil},
		{"GET", "/services/12", true, nil},
		{"POST", "/services", false, []string{"PROVIDER", "ADMIN"}},
		{"POST", "/auth/register", true, nil},
		{"POST", "/bookings", false, []string{"CUSTOMER"}},
		{"PUT", "/bookings/9/cancel", false, []string{"CUSTOMER", "ADMIN"}},
		{"DELETE", "/users/4", false, []string{"ADMIN"}},
		{"GET", "/users/providers", true, nil},
		{"GET", "/users/check-email", true, nil},
		{"GET", "/users/check-phone", true, nil},
		{"GET", "/users/stats", false, []string{"ADMIN"}},
		{"GET", "/reviews/17", true, nil},
		{"GET", "/reviews/customer", false, []string{"CUSTOMER"}},
		{"PUT", "/reviews/17/response", false, []string{"PROVIDER"}},
	}
	for _, tc := range cases {
		rule := matchRule(tc.method, tc.path)
		if rule == nil {
			t.Errorf("matchRule(%s %s) = nil", tc.method, tc.path)
			continue
		}
		if rule.Public != tc.wantPublic {
			t.Errorf("matchRule(%s %s).Public = %v, want %v", tc.method, tc.path, rule.Public, tc.wantPublic)
		}
		if len(rule.Roles) != len(tc.wantRoles) {
			t.Errorf("matchRule(%s %s).Roles = %v, want %v", tc.method, tc.path, rule.Roles, tc.wantRoles)
			continue
		}
		for i, role := range tc.wantRoles {
			if rule.Roles[i] != role {
				t.Errorf("matchRule(%s %s).Roles = %v, want %v", tc.method, tc.path, rule.Roles, tc.wantRoles)
				break
			}
		}
	}
}

func TestMatchRuleOrderingProvidersBeforeID(t *testing.T) {
	// "/users/providers" must resolve before the parameterized "/users/:id".
	rule := matchRule("GET", "/users/providers")
	if rule == nil || !rule.Public {
		t.Fatal("expected the public providers rule to win over /users/:id")
	}
}

func TestMatchRuleUnlisted(t *testing.T) {
	if rule := matchRule("GET", "/bookings/5"); rule != nil {
		t.Errorf("expected no rule for GET /bookings/5, got %+v", rule)
	}
}
