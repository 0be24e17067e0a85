package domain

// RewardTier is a coarse performance bucket derived from the final score
// percentage.
type RewardTier string

const (
	TierTop  RewardTier = "top"
	TierMid  RewardTier = "mid"
	TierBase RewardTier = "base"
)

// Reward is the computed outcome of a finished session.
type Reward struct {
	Tier       RewardTier `json:"tier"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Percentage float64    `json:"percentage"`
}

// TierFor buckets a score percentage. Thresholds are inclusive lower bounds:
// exactly 80 is top, exactly 60 is mid.
func TierFor(percentage float64) RewardTier {
	switch {
	case percentage >= 80:
		return TierTop
	case percentage >= 60:
		return TierMid
	default:
		return TierBase
	}
}

// RewardFor computes the reward for score out of total. total must be
// positive; empty question sets are rejected before play begins.
func RewardFor(score, total int) Reward {
	percentage := float64(score) / float64(total) * 100
	reward := Reward{
		Tier:       TierFor(percentage),
		Score:      score,
		Total:      total,
		Percentage: percentage,
	}
	switch reward.Tier {
	case TierTop:
		reward.Title = "Quiz Master"
		reward.Message = "Outstanding performance on your quiz!"
	case TierMid:
		reward.Title = "Knowledge Champion"
		reward.Message = "Great effort on your challenge!"
	default:
		reward.Title = "Quiz Explorer"
		reward.Message = "Keep learning and improving!"
	}
	return reward
}
