package layout

import "regexp"

// Display bucket names for grouped skills, in render order.
const (
	GroupCore      = "CORE CAPABILITIES"
	GroupSystems   = "SYSTEMS & PLATFORMS"
	GroupTools     = "TOOLS & PRACTICES"
	GroupLanguages = "LANGUAGES & DATA"
)

var skillGroupOrder = []string{GroupCore, GroupSystems, GroupTools, GroupLanguages}

// The three pattern sets are tested in a fixed order; the first match wins
// and a skill lands in exactly one bucket. Anything unmatched is a core
// capability.
var (
	languagePattern = regexp.MustCompile(`(?i)(python|c#|java|sql|json|xml|html|css)`)
	systemPattern   = regexp.MustCompile(`(?i)(windows|aws|docker|kubernetes|linux|active directory|sql server|mongodb)`)
	toolsPattern    = regexp.MustCompile(`(?i)(servicenow|salesforce|zendesk|devops|jira|bug|release|git)`)
)

// SkillGroup is one display bucket with the skills assigned to it.
type SkillGroup struct {
	Name   string
	Skills []string
}

// GroupSkills distributes a flat skill list into the four display buckets.
// All four groups are always returned, in render order; empty groups carry
// an empty slice.
func GroupSkills(skills []string) []SkillGroup {
	buckets := map[string][]string{
		GroupCore:      {},
		GroupSystems:   {},
		GroupTools:     {},
		GroupLanguages: {},
	}

	for _, skill := range skills {
		switch {
		case languagePattern.MatchString(skill):
			buckets[GroupLanguages] = append(buckets[GroupLanguages], skill)
		case systemPattern.MatchString(skill):
			buckets[GroupSystems] = append(buckets[GroupSystems], skill)
		case toolsPattern.MatchString(skill):
			buckets[GroupTools] = append(buckets[GroupTools], skill)
		default:
			buckets[GroupCore] = append(buckets[GroupCore], skill)
		}
	}

	out := make([]SkillGroup, 0, len(skillGroupOrder))
	for _, name := range skillGroupOrder {
		out = append(out, SkillGroup{Name: name, Skills: buckets[name]})
	}
	return out
}
