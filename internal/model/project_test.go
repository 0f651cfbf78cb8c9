package model

import "testing"

func TestProjectHasMember(t *testing.T) {
	p := Project{Members: []string{"u1", "u2"}}

	if !p.HasMember("u1") {
		t.Error("expected u1 to be a member")
	}
	if p.HasMember("u3") {
		t.Error("expected u3 not to be a member")
	}
	var empty Project
	if empty.HasMember("u1") {
		t.Error("expected no members on the zero project")
	}
}
