package entity

// Manufacturing stages in production order. Stage names are the Turkish
// labels the shop floor uses; they are stored verbatim in the database and
// in lot documents, so they must never be renamed.
const (
	StageUretim      = "Üretim"       // knitting
	StageBurunDikisi = "Burun Dikişi" // toe closing
	StageYikama      = "Yıkama"       // washing
	StageKurutma     = "Kurutma"      // drying
	StagePaketleme   = "Paketleme"    // packaging
	StageTamamlandi  = "Tamamlandı"   // completed
)

// Stages lists all stages in manufacturing order.
var Stages = []string{
	StageUretim,
	StageBurunDikisi,
	StageYikama,
	StageKurutma,
	StagePaketleme,
	StageTamamlandi,
}

// stageCompletion maps each stage to its canonical completion percentage.
var stageCompletion = map[string]int{
	StageUretim:      20,
	StageBurunDikisi: 40,
	StageYikama:      60,
	StageKurutma:     80,
	StagePaketleme:   90,
	StageTamamlandi:  100,
}

// StageCompletion returns the canonical completion percentage for a stage,
// or 0 for an unknown stage.
func StageCompletion(stage string) int {
	return stageCompletion[stage]
}

// IsValidStage reports whether stage is one of the known manufacturing stages.
func IsValidStage(stage string) bool {
	_, ok := stageCompletion[stage]
	return ok
}

// StageIndex returns the position of stage in the manufacturing order, or -1
// for an unknown stage. The index is used only for progress-bar rendering;
// it does not gate transitions.
func StageIndex(stage string) int {
	for i, s := range Stages {
		if s == stage {
			return i
		}
	}
	return -1
}

// Advance returns the completion percentage a lot reaches when it moves to
// target. Moving backward is allowed (operators correct mistaken stages), so
// the current stage does not constrain the result. Whether a particular move
// is accepted at all is the scan workflow's decision, not the state machine's.
func Advance(current, target string) int {
	_ = current
	return StageCompletion(target)
}
