package model

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"SP", RoleStarter},
		{"SP1", RoleStarter},
		{"sp5", RoleStarter},
		{" cl ", RoleCloser},
		{"su", RoleSetup},
		{"MR", RoleMiddle},
		{"LR", RoleLong},
		{"", RoleMiddle},
		{"utility", RoleMiddle},
	}
	for _, c := range cases {
		if got := NormalizeRole(c.in); got != c.want {
			t.Fatalf("NormalizeRole(%q): got %s want %s", c.in, got, c.want)
		}
	}
}

func TestIsStarter(t *testing.T) {
	if !RoleStarter.IsStarter() {
		t.Fatal("SP is a starter")
	}
	for _, r := range []Role{RoleCloser, RoleSetup, RoleMiddle, RoleLong} {
		if r.IsStarter() {
			t.Fatalf("%s is not a starter", r)
		}
	}
}
