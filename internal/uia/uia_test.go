package uia

import "testing"

// TestRoleForClass verifies case-insensitive class prefixes.
func TestRoleForClass(t *testing.T) {
	cases := []struct {
		class string
		want  Role
	}{
		{class: "Edit", want: RoleEdit},
		{class: "EDIT", want: RoleEdit},
		{class: "WindowsForms10.EDIT.app.0.141b42a_r6_ad1", want: RoleEdit},
		{class: "RichEdit20W", want: RoleDocument},
		{class: "RICHEDIT50W", want: RoleDocument},
		{class: "WindowsForms10.RichEdit20W.app.0.x", want: RoleDocument},
		{class: "Button", want: ""},
		{class: "Static", want: ""},
		{class: "", want: ""},
	}
	for _, tc := range cases {
		if got := RoleForClass(tc.class); got != tc.want {
			t.Fatalf("RoleForClass(%q) = %q, want %q", tc.class, got, tc.want)
		}
	}
}
