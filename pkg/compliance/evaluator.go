// Package compliance scores content against posting policy. Evaluation is pure and safe for concurrent use.
package compliance

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/umputun/postguard/pkg/domain"
)

const (
	violationPenalty = 15
	subScorePenalty  = 2
	maxSubScore      = 10
)

// Evaluator checks content against compliance rules
type Evaluator struct {
	rules Rules
}

// check accumulates violations and recommendations for one sub-check
type check struct {
	violations      []domain.Violation
	recommendations []string
}

func (c *check) add(code, msg, recommendation string) {
	c.violations = append(c.violations, domain.Violation{Code: code, Message: msg})
	if recommendation != "" {
		c.recommendations = append(c.recommendations, recommendation)
	}
}

// New makes an evaluator, normalizing rule lists to lower case
func New(rules Rules) *Evaluator {
	rules.Blacklist = normalize(rules.Blacklist)
	rules.AllowedDomains = normalize(rules.AllowedDomains)
	rules.SelfPromoMarkers = normalize(rules.SelfPromoMarkers)
	rules.NoSelfPromoChannels = normalize(rules.NoSelfPromoChannels)
	if rules.DefaultLimits == (LengthLimits{}) {
		rules.DefaultLimits = DefaultLimits
	}
	limits := make(map[domain.Platform]LengthLimits, len(defaultPlatformLimits)+len(rules.PlatformLimits))
	for p, l := range defaultPlatformLimits {
		limits[p] = l
	}
	for p, l := range rules.PlatformLimits {
		limits[p] = l
	}
	rules.PlatformLimits = limits
	return &Evaluator{rules: rules}
}

// Evaluate returns the compliance verdict for body posted to platform within ectx.
// Violations are ordered: length, toxicity, repetition, hashtags, misleading claims, platform rules, spam.
func (e *Evaluator) Evaluate(body string, platform domain.Platform, ectx EvalContext) domain.ComplianceVerdict {
	lower := strings.ToLower(body)
	words := strings.Fields(body)

	length := e.checkLength(len(words), e.limitsFor(platform, ectx))
	toxicity, toxScore := e.checkToxicity(body, lower)
	repetition, repScore := checkRepetition(words)
	hashtags := checkHashtags(body)
	hints := checkDisclosures(lower)
	misleading := checkMisleading(body)
	platformRules := e.checkPlatformRules(lower, body, ectx)
	spam, spamScore := checkSpam(lower, body)

	verdict := domain.ComplianceVerdict{
		Violations: []domain.Violation{},
		Hints:      hints,
		SubScores:  domain.SubScores{Toxicity: toxScore, Repetition: repScore, Spam: spamScore},
		WordCount:  len(words),
	}
	for _, c := range []check{length, toxicity, repetition, hashtags, misleading, platformRules, spam} {
		verdict.Violations = append(verdict.Violations, c.violations...)
		verdict.Recommendations = append(verdict.Recommendations, c.recommendations...)
	}
	verdict.IsCompliant = len(verdict.Violations) == 0
	verdict.Score = score(len(verdict.Violations), verdict.SubScores)
	verdict.RiskLevel = domain.RiskForScore(verdict.Score)
	return verdict
}

func score(violations int, sub domain.SubScores) int {
	res := 100 - violationPenalty*violations
	for _, s := range []int{sub.Toxicity, sub.Repetition, sub.Spam} {
		res -= subScorePenalty * (maxSubScore - s)
	}
	return max(0, res)
}

func (e *Evaluator) limitsFor(platform domain.Platform, ectx EvalContext) LengthLimits {
	if ectx.Limits.Max > 0 {
		return ectx.Limits
	}
	if l, ok := e.rules.PlatformLimits[platform]; ok {
		return l
	}
	return e.rules.DefaultLimits
}

func (e *Evaluator) checkLength(count int, limits LengthLimits) (res check) {
	if limits.Max > 0 && count > limits.Max {
		res.add(domain.ViolationLengthExceeded,
			fmt.Sprintf("content exceeds %d word limit (%d words)", limits.Max, count),
			fmt.Sprintf("reduce content to %d words or less", limits.Max))
	}
	if count < limits.Min {
		res.add(domain.ViolationLengthTooShort,
			fmt.Sprintf("content too short (%d words, minimum %d)", count, limits.Min),
			fmt.Sprintf("increase content to at least %d words", limits.Min))
	}
	return res
}

func (e *Evaluator) checkToxicity(body, lower string) (res check, subScore int) {
	for _, term := range e.rules.Blacklist {
		if strings.Contains(lower, term) {
			res.add(domain.ViolationBlacklistedTerm, fmt.Sprintf("contains blacklisted term %q", term),
				fmt.Sprintf("remove or replace %q", term))
		}
	}

	for _, re := range promotionalPatterns {
		if m := re.FindString(body); m != "" {
			res.add(domain.ViolationPromotionalLanguage, fmt.Sprintf("contains promotional language %q", m),
				"remove promotional language")
			break
		}
	}

	var upper, total int
	for _, r := range body {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if float64(upper) > float64(total)*0.3 {
		res.add(domain.ViolationExcessiveCaps, "excessive capitalization", "reduce use of ALL CAPS")
	}

	if n := strings.Count(body, "!"); n > 3 {
		res.add(domain.ViolationExcessiveExclamation, fmt.Sprintf("too many exclamation marks (%d)", n), "reduce exclamation marks")
	}
	if n := strings.Count(body, "?"); n > 5 {
		res.add(domain.ViolationExcessiveQuestion, fmt.Sprintf("too many question marks (%d)", n), "reduce question marks")
	}

	aggressive := 0
	for _, w := range aggressiveWords {
		if strings.Contains(lower, w) {
			aggressive++
		}
	}
	if aggressive > 2 {
		res.add(domain.ViolationAggressiveLanguage, "contains aggressive language", "use more neutral, respectful language")
	}

	return res, max(0, maxSubScore-2*len(res.violations))
}

func checkRepetition(words []string) (res check, subScore int) {
	if len(words) == 0 {
		return res, maxSubScore
	}

	counts := map[string]int{}
	maxWord := 0
	for _, w := range words {
		lw := strings.ToLower(w)
		if utf8.RuneCountInString(lw) <= 3 {
			continue
		}
		counts[lw]++
		maxWord = max(maxWord, counts[lw])
	}
	ratio := float64(maxWord) / float64(len(words))

	phrases := map[string]int{}
	maxPhrase := 0
	for i := 0; i+2 < len(words); i++ {
		p := strings.ToLower(strings.Join(words[i:i+3], " "))
		phrases[p]++
		maxPhrase = max(maxPhrase, phrases[p])
	}

	var issues []string
	if ratio > 0.15 {
		issues = append(issues, fmt.Sprintf("word repetition ratio %.2f", ratio))
	}
	if maxPhrase > 2 {
		issues = append(issues, fmt.Sprintf("phrase repeated %d times", maxPhrase))
	}
	if len(issues) > 0 {
		res.add(domain.ViolationRepetition, "high repetition: "+strings.Join(issues, ", "), "vary word choice and avoid repeated phrases")
	}
	return res, max(0, maxSubScore-3*len(issues))
}

func checkDisclosures(lower string) []string {
	var hints []string
	for _, d := range disclosures {
		if strings.Contains(lower, d.phrase) {
			continue
		}
		for _, trig := range d.triggers {
			if strings.Contains(lower, trig) {
				hints = append(hints, d.hint)
				break
			}
		}
	}
	if aiRe.MatchString(lower) && !strings.Contains(lower, "ai-generated") {
		hints = append(hints, "ai-generated content disclosure recommended")
	}
	return hints
}

func checkMisleading(body string) (res check) {
	var found []string
	for _, re := range misleadingPatterns {
		if m := re.FindString(body); m != "" {
			found = append(found, strings.ToLower(m))
		}
	}
	if len(found) > 0 {
		res.add(domain.ViolationMisleadingClaim, "potentially misleading claims: "+strings.Join(found, ", "),
			"remove or qualify misleading claims")
	}
	return res
}

func (e *Evaluator) checkPlatformRules(lower, body string, ectx EvalContext) (res check) {
	if e.noSelfPromotion(ectx) {
		for _, m := range e.rules.SelfPromoMarkers {
			if strings.Contains(lower, m) {
				res.add(domain.ViolationSelfPromotion, fmt.Sprintf("self-promotion (%q) not allowed here", m), "remove promotional content")
				break
			}
		}
	}
	if strings.Contains(lower, "vote manipulation") {
		res.add(domain.ViolationVoteManipulation, "vote manipulation not allowed", "remove vote manipulation language")
	}
	if strings.Contains(lower, "harassment") {
		res.add(domain.ViolationHarassment, "harassment not allowed", "remove harassing language")
	}
	for _, link := range linkRe.FindAllString(body, -1) {
		if !e.allowedLink(link) {
			res.add(domain.ViolationOffDomainLink, fmt.Sprintf("link to %s is not in the allowed domains", link),
				"check channel rules for external links")
		}
	}
	return res
}

func (e *Evaluator) noSelfPromotion(ectx EvalContext) bool {
	if ectx.NoSelfPromotion || strings.Contains(strings.ToLower(ectx.Flair), "no self-promo") {
		return true
	}
	channel := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ectx.Channel), "r/"))
	for _, c := range e.rules.NoSelfPromoChannels {
		if channel != "" && strings.TrimPrefix(c, "r/") == channel {
			return true
		}
	}
	return false
}

func (e *Evaluator) allowedLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range e.rules.AllowedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func checkSpam(lower, body string) (res check, subScore int) {
	var issues []string
	if n := len(linkRe.FindAllString(body, -1)); n > 2 {
		issues = append(issues, fmt.Sprintf("too many links (%d)", n))
	}
	if n := len(mentionRe.FindAllString(body, -1)); n > 3 {
		issues = append(issues, fmt.Sprintf("too many mentions (%d)", n))
	}
	if n := strings.Count(body, "!"); n > 3 {
		issues = append(issues, fmt.Sprintf("excessive exclamation marks (%d)", n))
	}
	for _, p := range suspiciousPhrases {
		if strings.Contains(lower, p) {
			issues = append(issues, fmt.Sprintf("suspicious phrase %q", p))
		}
	}
	if len(issues) > 0 {
		res.add(domain.ViolationSpamIndicators, "spam indicators: "+strings.Join(issues, ", "), "remove spam-like links, mentions and phrases")
	}
	return res, max(0, maxSubScore-2*len(issues))
}

// checkHashtags reports hashtags that are too long or look like spam, one violation for all of them
func checkHashtags(body string) (res check) {
	var bad []string
	for _, tag := range hashtagRe.FindAllString(body, -1) {
		lower := strings.ToLower(tag)
		if utf8.RuneCountInString(tag) > maxHashtagLen {
			bad = append(bad, tag)
			continue
		}
		for _, w := range spammyHashtagWords {
			if strings.Contains(lower, w) {
				bad = append(bad, tag)
				break
			}
		}
	}
	if len(bad) > 0 {
		res.add(domain.ViolationHashtags, "inappropriate hashtags: "+strings.Join(bad, ", "),
			"use short, relevant hashtags")
	}
	return res
}

func normalize(list []string) []string {
	res := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			res = append(res, s)
		}
	}
	return res
}
