package badges

// threshold ladders for each badge family. A user holds every badge whose
// threshold they have reached; recomputation replaces the whole set.
var (
	playBadges = []ladderStep{
		{1, "first_quiz"},
		{5, "quiz_enthusiast"},
		{10, "quiz_veteran"},
		{50, "quiz_master"},
	}
	pointBadges = []ladderStep{
		{50, "point_collector"},
		{100, "point_hunter"},
		{200, "point_champion"},
		{500, "point_legend"},
	}
	hostBadges = []ladderStep{
		{1, "first_host"},
		{10, "seasoned_host"},
	}
)

type ladderStep struct {
	threshold int
	name      string
}

// Compute derives the full badge set from a user's play count, lifetime
// points, and hosted-quiz count.
func Compute(plays, points, hosts int) []string {
	earned := make([]string, 0, len(playBadges)+len(pointBadges)+len(hostBadges))
	earned = appendLadder(earned, playBadges, plays)
	earned = appendLadder(earned, pointBadges, points)
	earned = appendLadder(earned, hostBadges, hosts)
	return earned
}

func appendLadder(earned []string, ladder []ladderStep, value int) []string {
	for _, step := range ladder {
		if value >= step.threshold {
			earned = append(earned, step.name)
		}
	}
	return earned
}
