package events

type Stage int

const (
	StageStart Stage = iota
	StageCatalog
	StageDescriptor
	StageLoader
	StageAssets
	StageClientJar
	StageLibraries
	StageJava
	StageSpawn
	StageReady
)

// Band is the slice of the overall progress bar a stage owns.
type Band struct {
	Stage Stage
	Label string
	From  float64
	To    float64
}

// Bands is the single source of truth for how launch stages share the bar.
var Bands = []Band{
	{StageStart, "Starting launcher", 0, 0},
	{StageCatalog, "Fetching version catalog", 1, 1},
	{StageDescriptor, "Fetching version details", 2, 2},
	{StageLoader, "Preparing mod loader", 5, 5},
	{StageAssets, "Downloading assets", 0, 20},
	{StageClientJar, "Downloading client", 20, 20},
	{StageLibraries, "Checking libraries", 20, 90},
	{StageJava, "Looking for Java", 92, 92},
	{StageSpawn, "Starting game process", 95, 95},
	{StageReady, "Game started", 100, 100},
}

func BandOf(stage Stage) Band {
	for _, b := range Bands {
		if b.Stage == stage {
			return b
		}
	}
	return Band{Stage: stage}
}

// Scale maps current/total into the stage's band.
func (b Band) Scale(current, total int64) float64 {
	if total <= 0 || b.To == b.From {
		return b.From
	}
	fraction := float64(current) / float64(total)
	if fraction > 1 {
		fraction = 1
	}
	return b.From + fraction*(b.To-b.From)
}

// Report emits a progress event for stage, labelled with label or the
// band's default label when label is empty.
func Report(em Emitter, stage Stage, label string, current, total int64) {
	band := BandOf(stage)
	if label == "" {
		label = band.Label
	}
	em.Progress(Progress{
		Stage:    label,
		Progress: band.Scale(current, total),
		Current:  current,
		Total:    total,
	})
}
