package analysis

import (
	"fmt"

	"github.com/discochess/woodpusher/benchmark/strength"
)

// SkillComparison contains a full statistical comparison between two
// skill levels, measured by centipawn loss (lower is stronger).
type SkillComparison struct {
	Skill1            int
	Skill2            int
	Stats1            *DescriptiveStats
	Stats2            *DescriptiveStats
	MannWhitney       *MannWhitneyResult
	EffectSize        *EffectSize
	BootstrapCI       *BootstrapResult
	Stronger          int  // Skill with the lower mean loss, or -1 for a tie.
	StrongerConfident bool // True if the difference is statistically significant.
}

// CompareSkills performs a full statistical comparison between two
// skill samples.
func CompareSkills(
	sample1, sample2 strength.SkillSample,
	bootstrapIterations int,
	confidence float64,
) *SkillComparison {
	mw := MannWhitneyU(sample1.Losses, sample2.Losses)
	es := ComputeEffectSize(sample1.Losses, sample2.Losses)
	bs := BootstrapConfidenceInterval(sample1.Losses, sample2.Losses, bootstrapIterations, confidence)

	stats1 := Describe(sample1.Losses)
	stats2 := Describe(sample2.Losses)

	stronger := -1
	confident := false
	switch {
	case stats1.Mean < stats2.Mean:
		stronger = sample1.Skill
		confident = mw.Significant
	case stats2.Mean < stats1.Mean:
		stronger = sample2.Skill
		confident = mw.Significant
	}

	return &SkillComparison{
		Skill1:            sample1.Skill,
		Skill2:            sample2.Skill,
		Stats1:            stats1,
		Stats2:            stats2,
		MannWhitney:       mw,
		EffectSize:        es,
		BootstrapCI:       bs,
		Stronger:          stronger,
		StrongerConfident: confident,
	}
}

// Summary returns a human-readable summary of the comparison.
func (c *SkillComparison) Summary() string {
	sig := "not statistically significant"
	if c.MannWhitney.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.MannWhitney.PValue)
	}

	verdict := "tie"
	if c.Stronger >= 0 {
		verdict = fmt.Sprintf("skill %d stronger", c.Stronger)
	}

	return fmt.Sprintf(
		"skill %d vs skill %d (centipawn loss, lower is stronger):\n"+
			"  skill %d: mean=%.1f, median=%.1f, std=%.1f\n"+
			"  skill %d: mean=%.1f, median=%.1f, std=%.1f\n"+
			"  Difference: %.1f cp (%.1f%%)\n"+
			"  Effect size: %.2f (%s)\n"+
			"  Result: %s, %s",
		c.Skill1, c.Skill2,
		c.Skill1, c.Stats1.Mean, c.Stats1.Median, c.Stats1.StdDev,
		c.Skill2, c.Stats2.Mean, c.Stats2.Median, c.Stats2.StdDev,
		c.Stats1.Mean-c.Stats2.Mean,
		safePctDiff(c.Stats1.Mean, c.Stats2.Mean),
		c.EffectSize.CohensD, c.EffectSize.Interpretation,
		verdict, sig,
	)
}

func safePctDiff(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// LadderComparison compares every skill level against the strongest
// one in the run.
type LadderComparison struct {
	Baseline    int
	Comparisons []*SkillComparison
}

// CompareLadder compares each sample against the sample with the
// highest skill level.
func CompareLadder(samples []strength.SkillSample, bootstrapIterations int, confidence float64) *LadderComparison {
	if len(samples) == 0 {
		return nil
	}

	base := 0
	for i, s := range samples {
		if s.Skill > samples[base].Skill {
			base = i
		}
	}

	ladder := &LadderComparison{Baseline: samples[base].Skill}
	for i, s := range samples {
		if i == base {
			continue
		}
		ladder.Comparisons = append(ladder.Comparisons,
			CompareSkills(s, samples[base], bootstrapIterations, confidence))
	}
	return ladder
}
