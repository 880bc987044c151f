package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MechanicProfile is the player-facing user profile: five bounded stats,
// accumulated XP and the tier derived from it.
type MechanicProfile struct {
	ID             string `json:"id" gorm:"primaryKey"`
	ExternalUserID string `json:"external_user_id" gorm:"uniqueIndex"` // account service identity
	Name           string `json:"name" gorm:"not null"`
	Tier           string `json:"tier" gorm:"default:'Unranked'"`
	XP             int    `json:"xp" gorm:"default:0"`

	CurrentJobID    *string `json:"current_job" gorm:"column:current_job_id"`
	TargetJobID     *string `json:"target_job" gorm:"column:target_job_id"`
	YearsExperience int     `json:"years_experience" gorm:"default:0"`

	// Penta-stats, each clamped to [0,100]
	StatTech  int `json:"stat_tech" gorm:"default:10"`
	StatHand  int `json:"stat_hand" gorm:"default:10"`
	StatSpeed int `json:"stat_speed" gorm:"default:10"`
	StatArt   int `json:"stat_art" gorm:"default:10"`
	StatBiz   int `json:"stat_biz" gorm:"default:10"`

	AvatarURL string `json:"avatar_url,omitempty"`

	// Salary self-report on the profile itself (detailed reports live in SalaryReport)
	CurrentSalary            *int               `json:"current_salary,omitempty"`
	SalaryProofURL           string             `json:"salary_proof_url,omitempty"`
	SalaryVerificationStatus VerificationStatus `json:"salary_verification_status" gorm:"default:'None'"`
	SalaryVerifiedAt         *time.Time         `json:"salary_verified_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// statAccessors maps each stat kind to its profile field. Resolving stats
// through this table (instead of reflection on field names) means an unknown
// stat kind is an error, never a silent no-op.
var statAccessors = map[StatType]func(*MechanicProfile) *int{
	StatTech:  func(p *MechanicProfile) *int { return &p.StatTech },
	StatHand:  func(p *MechanicProfile) *int { return &p.StatHand },
	StatSpeed: func(p *MechanicProfile) *int { return &p.StatSpeed },
	StatArt:   func(p *MechanicProfile) *int { return &p.StatArt },
	StatBiz:   func(p *MechanicProfile) *int { return &p.StatBiz },
}

// ValidateStatAccessors checks the accessor table against the canonical stat
// set. Called once at startup so a drifted table fails fast.
func ValidateStatAccessors() error {
	if len(statAccessors) != len(AllStatTypes) {
		return fmt.Errorf("stat accessor table has %d entries, want %d", len(statAccessors), len(AllStatTypes))
	}
	for _, st := range AllStatTypes {
		if _, ok := statAccessors[st]; !ok {
			return fmt.Errorf("stat accessor table missing %q", st)
		}
	}
	return nil
}

// Stat returns the current value of the given stat.
func (p *MechanicProfile) Stat(st StatType) (int, error) {
	acc, ok := statAccessors[st]
	if !ok {
		return 0, fmt.Errorf("unknown stat type %q", st)
	}
	return *acc(p), nil
}

// AddStat increases the given stat by delta, clamped to 100, and returns the
// new value. Rewards are always positive so no floor clamp is applied.
func (p *MechanicProfile) AddStat(st StatType, delta int) (int, error) {
	acc, ok := statAccessors[st]
	if !ok {
		return 0, fmt.Errorf("unknown stat type %q", st)
	}
	field := acc(p)
	v := *field + delta
	if v > 100 {
		v = 100
	}
	*field = v
	return v, nil
}

// Stats returns the compact stats map used by the dashboard and card checks.
func (p *MechanicProfile) Stats() map[StatType]int {
	return map[StatType]int{
		StatTech:  p.StatTech,
		StatHand:  p.StatHand,
		StatSpeed: p.StatSpeed,
		StatArt:   p.StatArt,
		StatBiz:   p.StatBiz,
	}
}
