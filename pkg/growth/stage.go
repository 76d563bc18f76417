package growth

// Stage is the discrete developmental level of a bot, derived from its
// distinct vocabulary size.
type Stage string

const (
	StageInfant     Stage = "infant"
	StageToddler    Stage = "toddler"
	StageChild      Stage = "child"
	StageAdolescent Stage = "adolescent"
	StageAdult      Stage = "adult"
)

// The canonical threshold ladder. A bot enters the next stage when its
// distinct vocabulary reaches the boundary.
const (
	toddlerThreshold    = 10
	childThreshold      = 25
	adolescentThreshold = 50
	adultThreshold      = 100
)

// StageFor maps a distinct vocabulary count to a stage. The ladder is
// non-uniform and monotonic: a growing vocabulary never lowers the stage.
func StageFor(vocabularySize int) Stage {
	switch {
	case vocabularySize < toddlerThreshold:
		return StageInfant
	case vocabularySize < childThreshold:
		return StageToddler
	case vocabularySize < adolescentThreshold:
		return StageChild
	case vocabularySize < adultThreshold:
		return StageAdolescent
	default:
		return StageAdult
	}
}

// NextStageThreshold returns the vocabulary boundary the bot is progressing
// toward. At the final stage it returns the last boundary.
func NextStageThreshold(vocabularySize int) int {
	switch {
	case vocabularySize < toddlerThreshold:
		return toddlerThreshold
	case vocabularySize < childThreshold:
		return childThreshold
	case vocabularySize < adolescentThreshold:
		return adolescentThreshold
	default:
		return adultThreshold
	}
}

// IsEarlyStage reports whether the stage still gets the nurturing voice
// treatment.
func IsEarlyStage(stage Stage) bool {
	return stage == StageInfant || stage == StageToddler
}

// rank orders stages so transitions can be checked for monotonicity.
func rank(stage Stage) int {
	switch stage {
	case StageInfant:
		return 0
	case StageToddler:
		return 1
	case StageChild:
		return 2
	case StageAdolescent:
		return 3
	case StageAdult:
		return 4
	default:
		return -1
	}
}
