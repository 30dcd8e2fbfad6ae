package service

import (
	"context"
	"math/rand"
	"strings"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/repo"
	"github.com/balamurugandev/safe-tradex/internal/telegram"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// minReportWords is the floor for an incident report to count as a real
// review instead of a checkbox exercise.
const minReportWords = 100

// Quote 纪律名言
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var disciplineQuotes = []Quote{
	{"The market is a device for transferring money from the impatient to the patient.", "Warren Buffett"},
	{"You don't need to be smarter than the rest. You have to be more disciplined than the rest.", "Warren Buffett"},
	{"If you can't take a small loss, sooner or later you will take the mother of all losses.", "Ed Seykota"},
	{"The goal of a successful trader is to make the best trades. Money is secondary.", "Alexander Elder"},
	{"Amateurs think about how much money they can make. Professionals think about how much money they could lose.", "Jack Schwager"},
	{"Revenge trading is the fastest way to blow up your account. Step away.", "Trading Wisdom"},
	{"Your capital is your ammunition. Don't waste it on low-probability shots.", "Trading Wisdom"},
	{"The elements of good trading are: cutting losses, cutting losses, and cutting losses.", "Ed Seykota"},
}

// IncidentSubmission 提交一份违规复盘
type IncidentSubmission struct {
	TriggerReason string `json:"trigger_reason" validate:"required,max=200"`
	Report        string `json:"report" validate:"required"`
}

// DisciplineService 恐慌按钮与违规复盘
type DisciplineService struct {
	logger *zap.Logger

	incidentReportRepo *repo.IncidentReportRepo
	tg                 *telegram.Telegram
}

func NewDisciplineService(db *gorm.DB, tg *telegram.Telegram, logger *zap.Logger) *DisciplineService {
	return &DisciplineService{
		logger:             logger,
		incidentReportRepo: repo.NewIncidentReportRepo(db),
		tg:                 tg,
	}
}

// RandomQuote 随机一条纪律名言，配合恐慌按钮弹层
func (s *DisciplineService) RandomQuote() Quote {
	return disciplineQuotes[rand.Intn(len(disciplineQuotes))]
}

// Panic 记录一次恐慌按钮触发并推送提醒
func (s *DisciplineService) Panic(reason string) Quote {
	if reason == "" {
		reason = "panic button"
	}
	s.logger.Warn("panic button pressed", zap.String("reason", reason))
	s.tg.NotifyPanic(reason)
	return s.RandomQuote()
}

// ReportIncident 落库一份复盘报告，不足 100 词拒收
func (s *DisciplineService) ReportIncident(ctx context.Context, sub IncidentSubmission) (*models.IncidentReport, error) {
	words := len(strings.Fields(sub.Report))
	if words < minReportWords {
		return nil, xe.ErrReportTooShort
	}

	report := &models.IncidentReport{
		ID:            ulid.Make().String(),
		TriggerReason: sub.TriggerReason,
		Report:        sub.Report,
		WordCount:     words,
	}
	if err := s.incidentReportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("incident report filed",
		zap.String("trigger_reason", sub.TriggerReason),
		zap.Int("word_count", words))
	return report, nil
}

// Incidents 历史复盘列表
func (s *DisciplineService) Incidents(ctx context.Context) ([]models.IncidentReport, error) {
	return s.incidentReportRepo.FindAll(ctx)
}
