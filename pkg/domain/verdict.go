package domain

// RiskLevel is derived from the compliance score
type RiskLevel string

// risk levels, from safest to riskiest
const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskForScore maps a 0-100 score to a risk level
func RiskForScore(score int) RiskLevel {
	switch {
	case score >= 90:
		return RiskLow
	case score >= 70:
		return RiskMedium
	case score >= 50:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// violation codes reported by the compliance evaluator
const (
	ViolationLengthExceeded       = "length_exceeded"
	ViolationLengthTooShort       = "length_too_short"
	ViolationBlacklistedTerm      = "blacklisted_term"
	ViolationPromotionalLanguage  = "promotional_language"
	ViolationExcessiveCaps        = "excessive_caps"
	ViolationExcessiveExclamation = "excessive_exclamation"
	ViolationExcessiveQuestion    = "excessive_question"
	ViolationAggressiveLanguage   = "aggressive_language"
	ViolationRepetition           = "repetition"
	ViolationHashtags             = "inappropriate_hashtags"
	ViolationMisleadingClaim      = "misleading_claim"
	ViolationSelfPromotion        = "self_promotion"
	ViolationVoteManipulation     = "vote_manipulation"
	ViolationHarassment           = "harassment"
	ViolationOffDomainLink        = "off_domain_link"
	ViolationSpamIndicators       = "spam_indicators"
)

// Violation is a single reason content is not compliant
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubScores are the 0-10 scores of the scored sub-checks
type SubScores struct {
	Toxicity   int `json:"toxicity"`
	Repetition int `json:"repetition"`
	Spam       int `json:"spam"`
}

// ComplianceVerdict is the evaluator output attached to a content item version.
// Hints are advisory disclosure requirements and never affect IsCompliant.
type ComplianceVerdict struct {
	IsCompliant     bool        `json:"is_compliant"`
	Violations      []Violation `json:"violations"`
	Hints           []string    `json:"hints,omitempty"`
	Recommendations []string    `json:"recommendations,omitempty"`
	SubScores       SubScores   `json:"sub_scores"`
	WordCount       int         `json:"word_count"`
	Score           int         `json:"score"`
	RiskLevel       RiskLevel   `json:"risk_level"`
}

// Codes returns violation codes in reported order
func (v ComplianceVerdict) Codes() []string {
	res := make([]string, 0, len(v.Violations))
	for _, vl := range v.Violations {
		res = append(res, vl.Code)
	}
	return res
}

// HasViolation checks if the verdict includes the given code
func (v ComplianceVerdict) HasViolation(code string) bool {
	for _, vl := range v.Violations {
		if vl.Code == code {
			return true
		}
	}
	return false
}
