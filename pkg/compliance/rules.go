package compliance

import (
	"regexp"

	"github.com/umputun/postguard/pkg/domain"
)

// LengthLimits is an inclusive word count range
type LengthLimits struct {
	Min int
	Max int
}

// DefaultLimits applies when neither context nor platform limits are set
var DefaultLimits = LengthLimits{Min: 20, Max: 120}

// defaultPlatformLimits keep short-form networks tighter than the default
var defaultPlatformLimits = map[domain.Platform]LengthLimits{
	domain.PlatformBluesky: {Min: 5, Max: 50},
	domain.PlatformTwitter: {Min: 5, Max: 50},
}

// Rules configure the evaluator. Zero value is usable and falls back to built-in defaults.
type Rules struct {
	Blacklist           []string
	AllowedDomains      []string
	SelfPromoMarkers    []string
	NoSelfPromoChannels []string
	DefaultLimits       LengthLimits
	PlatformLimits      map[domain.Platform]LengthLimits
}

// EvalContext is the per-item context of an evaluation
type EvalContext struct {
	Channel         string
	Flair           string
	NoSelfPromotion bool
	Limits          LengthLimits // zero means platform or default limits
}

var promotionalPatterns = mustCompile(
	`\b(?:click\s+here|buy\s+now|limited\s+time|act\s+fast)\b`,
	`\b(?:don't\s+miss\s+out|exclusive\s+offer|special\s+deal)\b`,
	`\b(?:guaranteed|100%\s+free|no\s+risk|instant\s+results)\b`,
	`\b(?:make\s+money\s+fast|get\s+rich\s+quick|easy\s+money)\b`,
	`\b(?:work\s+from\s+home|earn\s+\$\d+/\s*day|passive\s+income)\b`,
)

var misleadingPatterns = mustCompile(
	`\b(?:guaranteed|100%\s+guaranteed|money\s+back\s+guarantee)\b`,
	`\b(?:instant\s+results|overnight\s+success|get\s+rich\s+quick)\b`,
	`\b(?:no\s+risk|risk\s+free|zero\s+risk)\b`,
	`\b(?:everyone\s+can|anyone\s+can|works\s+for\s+everyone)\b`,
	`\b(?:best\s+in\s+the\s+world|number\s+one|top\s+rated)\b`,
)

var aggressiveWords = []string{"hate", "stupid", "idiot", "terrible", "awful", "worst"}

var suspiciousPhrases = []string{
	"click here", "buy now", "limited time", "act fast",
	"don't miss out", "exclusive offer", "special deal",
}

// spammyHashtagWords mark a hashtag as inappropriate when contained in it
var spammyHashtagWords = []string{"spam", "scam", "money", "rich"}

// maxHashtagLen counts runes including the leading '#'
const maxHashtagLen = 20

var (
	linkRe    = regexp.MustCompile(`https?://[^\s<>"'()\[\]]+`)
	mentionRe = regexp.MustCompile(`@\w+`)
	hashtagRe = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	aiRe      = regexp.MustCompile(`\b(?:ai|a\.i\.)\b`)
)

// disclosure triggers and the phrase that satisfies each of them
var disclosures = []struct {
	triggers []string
	phrase   string
	hint     string
}{
	{[]string{"affiliate", "commission", "referral"}, "affiliate disclosure", "affiliate disclosure required"},
	{[]string{"sponsored", "paid", "advertisement"}, "sponsored", "sponsored content disclosure required"},
	{[]string{"endorsement", "testimonial"}, "disclosure", "endorsement disclosure required"},
}

func mustCompile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(`(?i)`+p))
	}
	return res
}
