package service

import (
	"context"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/repo"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sentiment inputs.
const (
	CprNarrow = "narrow"
	CprWide   = "wide"

	VixUltraLow = "ultra_low"
	VixStable   = "stable"
	VixElevated = "elevated"
	VixPanic    = "panic"

	OiLongBuildup   = "long_buildup"
	OiShortBuildup  = "short_buildup"
	OiLongUnwinding = "long_unwinding"
	OiShortCovering = "short_covering"

	CuesPositive = "positive"
	CuesNeutral  = "neutral"
	CuesNegative = "negative"
)

// Verdicts.
const (
	VerdictBullish   = "bullish"
	VerdictBearish   = "bearish"
	VerdictSideways  = "sideways"
	VerdictUncertain = "uncertain"
)

// SentimentInput 盘前评估的五项输入与可选的支撑/阻力位
type SentimentInput struct {
	CprType         string  `json:"cpr_type" validate:"required,oneof=narrow wide"`
	VixRange        string  `json:"vix_range" validate:"required,oneof=ultra_low stable elevated panic"`
	OiBuildUp       string  `json:"oi_build_up" validate:"required,oneof=long_buildup short_buildup long_unwinding short_covering"`
	PcrValue        float64 `json:"pcr_value" validate:"required,gt=0"`
	GlobalCues      string  `json:"global_cues" validate:"required,oneof=positive neutral negative"`
	SupportLevel    string  `json:"support_level" validate:"max=50"`
	ResistanceLevel string  `json:"resistance_level" validate:"max=50"`
}

// SentimentResult 评估结论
type SentimentResult struct {
	Verdict         string   `json:"verdict"`
	VerdictLabel    string   `json:"verdict_label"`
	ConvictionScore int      `json:"conviction_score"`
	ConvictionLabel string   `json:"conviction_label"`
	Warnings        []string `json:"warnings"`
}

// SentimentService 市场情绪打分与留痕
type SentimentService struct {
	logger *zap.Logger

	sentimentLogRepo *repo.SentimentLogRepo
}

func NewSentimentService(db *gorm.DB, logger *zap.Logger) *SentimentService {
	return &SentimentService{
		logger:           logger,
		sentimentLogRepo: repo.NewSentimentLogRepo(db),
	}
}

// Score 纯打分。基准 50 分，先定多空结论，再叠加各项修正与告警扣分，
// 最终钳制在 [0, 100]。
func (s *SentimentService) Score(in SentimentInput) SentimentResult {
	var warnings []string
	score := 50

	verdict := VerdictUncertain
	verdictLabel := "Uncertain"

	switch {
	case in.CprType == CprNarrow && in.OiBuildUp == OiLongBuildup && in.GlobalCues == CuesPositive:
		verdict = VerdictBullish
		verdictLabel = "🟢 BULLISH - Strong upside momentum expected"
		score += 30
	case in.CprType == CprNarrow && in.OiBuildUp == OiShortBuildup && in.GlobalCues == CuesNegative:
		verdict = VerdictBearish
		verdictLabel = "🔴 BEARISH - Strong downside momentum expected"
		score -= 30
	case in.CprType == CprWide || in.VixRange == VixUltraLow || in.GlobalCues == CuesNeutral:
		verdict = VerdictSideways
		verdictLabel = "🟡 SIDEWAYS - Range-bound action expected"
		score = 50
	}

	if in.CprType == CprNarrow {
		score += 10
	}

	switch in.VixRange {
	case VixUltraLow:
		score -= 15
	case VixStable:
		score += 5
	case VixElevated:
		score += 10
	case VixPanic:
		score -= 10
	}

	// 持仓变化只有与已定结论同向时才加分
	if verdict == VerdictBullish && (in.OiBuildUp == OiLongBuildup || in.OiBuildUp == OiShortCovering) {
		score += 15
	} else if verdict == VerdictBearish && (in.OiBuildUp == OiShortBuildup || in.OiBuildUp == OiLongUnwinding) {
		score += 15
	}

	if in.PcrValue >= 0.8 && in.PcrValue <= 1.2 {
		score += 5
	}

	if in.GlobalCues == CuesPositive {
		score += 10
	}
	if in.GlobalCues == CuesNegative {
		score -= 10
	}

	if in.PcrValue > 1.3 {
		warnings = append(warnings, "⚠️ OVERBOUGHT: High risk of reversal/profit booking.")
		score -= 15
	}
	if in.PcrValue < 0.7 {
		warnings = append(warnings, "⚠️ OVERSOLD: High risk of short covering rally.")
		score -= 10
	}

	if in.VixRange == VixUltraLow {
		warnings = append(warnings, "⚠️ LOW VOLATILITY: Expect slow moves and heavy theta decay.")
	}
	if in.VixRange == VixPanic {
		warnings = append(warnings, "⚠️ HIGH VIX: Extreme volatility, consider reducing position size.")
	}

	if in.OiBuildUp == OiLongBuildup && in.GlobalCues == CuesNegative {
		warnings = append(warnings, "⚠️ DIVERGENCE: Domestic strength vs Global weakness. Exercise caution.")
		score -= 10
	}
	if in.OiBuildUp == OiShortBuildup && in.GlobalCues == CuesPositive {
		warnings = append(warnings, "⚠️ DIVERGENCE: Domestic weakness vs Global strength. Watch for reversal.")
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var convictionLabel string
	switch {
	case score >= 70:
		convictionLabel = "High Conviction"
	case score >= 45:
		convictionLabel = "Medium Conviction"
	default:
		convictionLabel = "Low/Avoid"
	}

	return SentimentResult{
		Verdict:         verdict,
		VerdictLabel:    verdictLabel,
		ConvictionScore: score,
		ConvictionLabel: convictionLabel,
		Warnings:        warnings,
	}
}

// ScoreAndLog 打分并落库留痕
func (s *SentimentService) ScoreAndLog(ctx context.Context, in SentimentInput) (*SentimentResult, *models.SentimentLog, error) {
	result := s.Score(in)

	log := &models.SentimentLog{
		ID:              ulid.Make().String(),
		CprType:         in.CprType,
		VixRange:        in.VixRange,
		OiBuildUp:       in.OiBuildUp,
		PcrValue:        in.PcrValue,
		GlobalCues:      in.GlobalCues,
		SupportLevel:    in.SupportLevel,
		ResistanceLevel: in.ResistanceLevel,
		FinalVerdict:    result.Verdict,
		ConvictionScore: result.ConvictionScore,
		Warnings:        datatypes.NewJSONSlice(result.Warnings),
	}
	if err := s.sentimentLogRepo.Create(ctx, log); err != nil {
		return nil, nil, err
	}

	s.logger.Info("sentiment logged",
		zap.String("verdict", result.Verdict),
		zap.Int("conviction_score", result.ConvictionScore))
	return &result, log, nil
}

// RecentLogs 最近的评估记录
func (s *SentimentService) RecentLogs(ctx context.Context, limit int) ([]models.SentimentLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.sentimentLogRepo.FindRecent(ctx, limit)
}
