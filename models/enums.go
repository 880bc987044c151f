package models

// StatType identifies one of the five profile stats (the "penta-stats").
type StatType string

const (
	StatTech  StatType = "Tech"  // diagnostics / technical skill
	StatHand  StatType = "Hand"  // hands-on craft
	StatSpeed StatType = "Speed" // throughput / efficiency
	StatArt   StatType = "Art"   // finish quality / aesthetics
	StatBiz   StatType = "Biz"   // shop management / business
)

// AllStatTypes lists every valid stat kind. Order matters for stable output.
var AllStatTypes = []StatType{StatTech, StatHand, StatSpeed, StatArt, StatBiz}

// Tier labels derived from accumulated XP.
const (
	TierUnranked = "Unranked"
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
	TierDiamond  = "Diamond"
)

// VerificationStatus for salary proofs and reports.
type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "None"
	VerificationPending  VerificationStatus = "Pending"
	VerificationVerified VerificationStatus = "Verified"
	VerificationRejected VerificationStatus = "Rejected"
)

// MarketDemand for jobs.
const (
	DemandExplosive = "Explosive"
	DemandHigh      = "High"
	DemandStable    = "Stable"
	DemandDeclining = "Declining"
)

// Post categories.
const (
	PostCategoryFree   = "Free"
	PostCategoryTech   = "Tech"
	PostCategorySalary = "Salary"
	PostCategoryCareer = "Career"
)

// Quest categories.
const (
	QuestCategoryDaily     = "Daily"
	QuestCategoryWeekly    = "Weekly"
	QuestCategoryChallenge = "Challenge"
	QuestCategorySpecial   = "Special"
)

// Course categories and delivery types.
const (
	CourseTypeOnline  = "Online"
	CourseTypeOffline = "Offline"
	CourseTypeHybrid  = "Hybrid"
)
