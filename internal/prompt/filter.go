package prompt

import (
	"regexp"
	"strings"
)

// blockedTerms fails the family-friendly screen. The match is word-bounded so
// "gunnera" or "skillet" do not trip it.
var blockedTerms = []string{
	"blood", "bloody", "gore", "gory", "gun", "guns", "rifle", "pistol",
	"weapon", "weapons", "knife", "knives", "sword fight", "kill", "killing",
	"murder", "corpse", "dead body", "death", "violence", "violent", "war",
	"bomb", "explosion", "drug", "drugs", "cocaine", "heroin", "alcohol",
	"beer", "wine", "vodka", "cigarette", "smoking", "naked", "nude", "nudity",
	"sexy", "erotic", "porn", "horror", "terrifying", "demon", "satanic",
	"suicide", "self harm", "torture",
}

var blockedPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(escapeAll(blockedTerms), "|") + `)\b`)

func escapeAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = regexp.QuoteMeta(t)
	}
	return out
}

// CheckFamilyFriendly screens a raw prompt before any upstream call is made.
// Returns false plus the offending term when the prompt is not suitable for
// a coloring book audience.
func CheckFamilyFriendly(raw string) (bool, string) {
	if m := blockedPattern.FindString(raw); m != "" {
		return false, strings.ToLower(m)
	}
	return true, ""
}
