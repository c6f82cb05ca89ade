package scoring

import (
	"survey-engine/internal/config"
	"survey-engine/internal/models"
)

// Classify maps a percentage to a bucket. The policy is selected by which
// config keys are present: threshold cut points (red/orange or
// green/orange) or ordered range arrays with matching texts. ok is false
// when no policy is configured or the configured one is unusable.
func Classify(percentage float64, cfg *config.BucketConfig) (models.Bucket, bool) {
	if cfg == nil {
		return models.Bucket{}, false
	}
	if len(cfg.Ranges) > 0 {
		return classifyRanges(percentage, cfg)
	}
	return classifyThresholds(percentage, cfg)
}

// classifyThresholds implements the two-cut-point policy. Which of red or
// green is present decides the direction: a red threshold means high
// percentages are bad, a green threshold means they are good.
func classifyThresholds(percentage float64, cfg *config.BucketConfig) (models.Bucket, bool) {
	if cfg.Orange == nil {
		return models.Bucket{}, false
	}
	switch {
	case cfg.Red != nil:
		if percentage >= *cfg.Red {
			return models.Bucket{Label: "red", Color: "red"}, true
		}
		if percentage >= *cfg.Orange {
			return models.Bucket{Label: "orange", Color: "orange"}, true
		}
		return models.Bucket{Label: "green", Color: "green"}, true
	case cfg.Green != nil:
		if percentage >= *cfg.Green {
			return models.Bucket{Label: "green", Color: "green"}, true
		}
		if percentage >= *cfg.Orange {
			return models.Bucket{Label: "orange", Color: "orange"}, true
		}
		return models.Bucket{Label: "red", Color: "red"}, true
	}
	return models.Bucket{}, false
}

// classifyRanges implements the ordered-range policy. Intervals are
// half-open toward the list's direction; the final bucket is closed on
// both ends. Ascending [0,30,60,100]: bucket i is [r[i], r[i+1]), last is
// [60,100]. Descending [100,60,30,0]: bucket i is (r[i+1], r[i]], last is
// [0,30], so a tie at a boundary lands in the lower-indexed bucket's
// neighbor below it.
func classifyRanges(percentage float64, cfg *config.BucketConfig) (models.Bucket, bool) {
	ranges, texts := cfg.Ranges, cfg.Texts
	n := len(ranges)
	if n < 2 || len(texts) != n-1 {
		return models.Bucket{}, false
	}

	ascending := ranges[0] < ranges[n-1]
	for i := 0; i < n-1; i++ {
		last := i == n-2
		var hit bool
		if ascending {
			if last {
				hit = percentage >= ranges[i] && percentage <= ranges[i+1]
			} else {
				hit = percentage >= ranges[i] && percentage < ranges[i+1]
			}
		} else {
			if last {
				hit = percentage <= ranges[i] && percentage >= ranges[i+1]
			} else {
				hit = percentage <= ranges[i] && percentage > ranges[i+1]
			}
		}
		if hit {
			bucket := models.Bucket{Label: texts[i]}
			if i < len(cfg.Colors) {
				bucket.Color = cfg.Colors[i]
			}
			return bucket, true
		}
	}
	return models.Bucket{}, false
}
