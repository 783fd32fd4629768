package service

import (
	"fmt"
	"smart_recall_backend/internal/model"
)

// BuildDetailedResults 根据会话与答题记录汇总统计报告
func BuildDetailedResults(session *model.LearningSession, results []model.QuestionResult) *model.DetailedResults {
	report := &model.DetailedResults{
		SessionID:      session.ID,
		TotalQuestions: session.QuestionCount,
	}
	report.CompletedAt = session.CompletedAt

	var scoreSum float64
	kindIndex := make(map[string]int)

	for _, r := range results {
		report.TotalTimeSecs += r.TimeSpentSeconds

		idx, seen := kindIndex[r.QuestionKind]
		if !seen {
			idx = len(report.KindBreakdown)
			kindIndex[r.QuestionKind] = idx
			report.KindBreakdown = append(report.KindBreakdown, model.KindStats{Kind: r.QuestionKind})
		}
		report.KindBreakdown[idx].Total++

		if r.Score == nil {
			report.NotAnswered++
			report.IncorrectCount++
			continue
		}
		scoreSum += *r.Score

		switch {
		case r.IsCorrect:
			report.CorrectCount++
			report.KindBreakdown[idx].Correct++
		case *r.Score > 0:
			report.PartialCount++
			report.IncorrectCount++
		default:
			report.IncorrectCount++
		}
	}

	answered := len(results)
	if answered > 0 {
		report.OverallAccuracy = float64(report.CorrectCount) / float64(answered) * 100
		report.AverageScore = scoreSum / float64(answered)
	}
	report.WeightedScore = report.AverageScore * 10
	report.Grade = letterGrade(report.WeightedScore)

	for i := range report.KindBreakdown {
		ks := &report.KindBreakdown[i]
		if ks.Total > 0 {
			ks.Accuracy = float64(ks.Correct) / float64(ks.Total) * 100
		}
	}

	report.Recommendations = buildRecommendations(report)
	return report
}

func letterGrade(weighted float64) string {
	switch {
	case weighted >= 90:
		return "A"
	case weighted >= 80:
		return "B"
	case weighted >= 70:
		return "C"
	case weighted >= 60:
		return "D"
	default:
		return "F"
	}
}

// buildRecommendations 生成学习建议：正确率偏低先提醒复习，
// 再指出最薄弱的题型，成绩优秀时给予肯定
func buildRecommendations(report *model.DetailedResults) []string {
	var recs []string

	if report.OverallAccuracy < model.CorrectPercentageThreshold {
		recs = append(recs, "整体正确率偏低，建议重新学习本节内容后再次练习")
	}

	if weakest := weakestKind(report.KindBreakdown); weakest != nil {
		recs = append(recs, fmt.Sprintf("「%s」题型正确率仅 %.0f%%，建议针对性加强练习", kindLabel(weakest.Kind), weakest.Accuracy))
	}

	if report.OverallAccuracy >= 90 {
		recs = append(recs, "表现出色，可以尝试更高难度的内容")
	}

	return recs
}

// weakestKind 返回正确率最低且未满分的题型；并列时取先出现的
func weakestKind(breakdown []model.KindStats) *model.KindStats {
	var weakest *model.KindStats
	for i := range breakdown {
		ks := &breakdown[i]
		if ks.Accuracy >= 100 {
			continue
		}
		if weakest == nil || ks.Accuracy < weakest.Accuracy {
			weakest = ks
		}
	}
	return weakest
}

func kindLabel(kind string) string {
	labels := map[string]string{
		string(model.KindMultipleChoice):        "单项选择",
		string(model.KindFillBlank):             "填空",
		string(model.KindExactTyping):           "精确输入",
		string(model.KindTrueFalse):             "判断",
		string(model.KindMatchConcepts):         "概念连线",
		string(model.KindShortAnswer):           "简答",
		string(model.KindScenario):              "情景分析",
		string(model.KindFlashcard):             "记忆卡片",
		string(model.KindMissingWordChoice):     "选词填空",
		string(model.KindContentMultipleChoice): "内容选择",
	}
	if label, ok := labels[kind]; ok {
		return label
	}
	return kind
}
