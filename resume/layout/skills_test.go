package layout

import (
	"reflect"
	"testing"
)

func TestGroupSkillsBuckets(t *testing.T) {
	groups := GroupSkills([]string{"Python", "AWS", "Jira", "Leadership"})

	want := map[string][]string{
		GroupCore:      {"Leadership"},
		GroupSystems:   {"AWS"},
		GroupTools:     {"Jira"},
		GroupLanguages: {"Python"},
	}
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}
	for _, g := range groups {
		if !reflect.DeepEqual(g.Skills, want[g.Name]) {
			t.Errorf("group %q: got %v want %v", g.Name, g.Skills, want[g.Name])
		}
	}
}

func TestGroupSkillsOrderStable(t *testing.T) {
	groups := GroupSkills([]string{"Git", "SQL"})

	wantOrder := []string{GroupCore, GroupSystems, GroupTools, GroupLanguages}
	if len(groups) != len(wantOrder) {
		t.Fatalf("expected %d groups, got %d", len(wantOrder), len(groups))
	}
	for i, g := range groups {
		if g.Name != wantOrder[i] {
			t.Errorf("group[%d] = %q, want %q", i, g.Name, wantOrder[i])
		}
	}
}

func TestGroupSkillsFirstMatchWins(t *testing.T) {
	// "SQL Server" matches both the language and system patterns; languages
	// are checked first.
	groups := GroupSkills([]string{"SQL Server"})
	for _, g := range groups {
		switch g.Name {
		case GroupLanguages:
			if !reflect.DeepEqual(g.Skills, []string{"SQL Server"}) {
				t.Errorf("languages = %v, want [SQL Server]", g.Skills)
			}
		default:
			if len(g.Skills) != 0 {
				t.Errorf("group %q should be empty, got %v", g.Name, g.Skills)
			}
		}
	}
}

func TestGroupSkillsCaseInsensitive(t *testing.T) {
	groups := GroupSkills([]string{"DOCKER", "python"})
	for _, g := range groups {
		switch g.Name {
		case GroupSystems:
			if !reflect.DeepEqual(g.Skills, []string{"DOCKER"}) {
				t.Errorf("systems = %v", g.Skills)
			}
		case GroupLanguages:
			if !reflect.DeepEqual(g.Skills, []string{"python"}) {
				t.Errorf("languages = %v", g.Skills)
			}
		}
	}
}

func TestGroupSkillsEmptyInput(t *testing.T) {
	groups := GroupSkills(nil)
	if len(groups) != 4 {
		t.Fatalf("expected 4 empty groups, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g.Skills) != 0 {
			t.Errorf("group %q not empty: %v", g.Name, g.Skills)
		}
	}
}
