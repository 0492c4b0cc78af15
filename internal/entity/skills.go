package entity

const (
	SkillFly        = "fly"
	SkillForceSkip  = "force_skip"
	SkillTimeRewind = "time_rewind"
	SkillStarPick   = "star_pick"
)

// SkillIDs - every skill a participant can use, once each per room.
var SkillIDs = []string{SkillFly, SkillForceSkip, SkillTimeRewind, SkillStarPick}

// SkillSet - per-participant one-shot usage flags, false until consumed.
type SkillSet map[string]bool

func NewSkillSet() SkillSet {
	set := make(SkillSet, len(SkillIDs))
	for _, id := range SkillIDs {
		set[id] = false
	}

	return set
}

func IsKnownSkill(id string) bool {
	for _, known := range SkillIDs {
		if id == known {
			return true
		}
	}

	return false
}
