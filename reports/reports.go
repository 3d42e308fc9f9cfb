// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reports

import (
	"sort"
	"time"

	"github.com/rmaffei/checkfield/models"
)

// Filter narrows the checklist set before aggregation. The date range is
// inclusive on createdAt; string fields are exact matches when non-empty.
type Filter struct {
	From         *time.Time
	To           *time.Time
	TemplateID   string
	Status       string
	TechnicianID string
	StoreCode    string
}

// GroupStats carries per-technician or per-store counts. AverageRating is
// restricted to approved entries with a rating.
type GroupStats struct {
	Key           string  `json:"key"`
	Total         int     `json:"total"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	Pending       int     `json:"pending"`
	AverageRating float64 `json:"averageRating"`
}

type TemplateStats struct {
	TemplateID   string  `json:"templateId"`
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	ApprovalRate float64 `json:"approvalRate"`
}

type DayStats struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Total    int    `json:"total"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
	Pending  int    `json:"pending"`
}

type ReportData struct {
	TotalChecklists int             `json:"totalChecklists"`
	Approved        int             `json:"approved"`
	Rejected        int             `json:"rejected"`
	Pending         int             `json:"pending"`
	ApprovalRate    float64         `json:"approvalRate"`
	AverageRating   float64         `json:"averageRating"`
	ByTechnician    []GroupStats    `json:"byTechnician"`
	ByStore         []GroupStats    `json:"byStore"`
	ByTemplate      []TemplateStats `json:"byTemplate"`
	Daily           []DayStats      `json:"daily"`
}

// Aggregate computes report statistics over the filtered checklist set.
// Purely in-memory; recomputed on every report view.
func Aggregate(checklists []models.Checklist, filter Filter) ReportData {
	var matched []models.Checklist
	for _, c := range checklists {
		if filter.matches(c) {
			matched = append(matched, c)
		}
	}

	data := ReportData{
		TotalChecklists: len(matched),
	}

	ratingSum, ratingCount := 0, 0
	for _, c := range matched {
		switch c.Status {
		case models.StatusAprovado:
			data.Approved++
			if c.Rating != nil {
				ratingSum += *c.Rating
				ratingCount++
			}
		case models.StatusRejeitado:
			data.Rejected++
		default:
			data.Pending++
		}
	}

	data.ApprovalRate = rate(data.Approved, data.TotalChecklists)
	if ratingCount > 0 {
		data.AverageRating = float64(ratingSum) / float64(ratingCount)
	}

	data.ByTechnician = groupBy(matched, func(c models.Checklist) string { return c.TechnicianID })
	data.ByStore = groupBy(matched, func(c models.Checklist) string { return c.StoreCode })
	data.ByTemplate = byTemplate(matched)
	data.Daily = daily(matched, filter)

	return data
}

func (f Filter) matches(c models.Checklist) bool {
	if f.From != nil && c.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && c.CreatedAt.After(*f.To) {
		return false
	}
	if f.TemplateID != "" && c.TemplateID != f.TemplateID {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.TechnicianID != "" && c.TechnicianID != f.TechnicianID {
		return false
	}
	if f.StoreCode != "" && c.StoreCode != f.StoreCode {
		return false
	}
	return true
}

// groupBy buckets checklists by the key function and computes per-group
// counts plus the approved-only average rating.
func groupBy(checklists []models.Checklist, key func(models.Checklist) string) []GroupStats {
	groups := make(map[string]*GroupStats)
	ratingSums := make(map[string]int)
	ratingCounts := make(map[string]int)

	for _, c := range checklists {
		k := key(c)
		g, ok := groups[k]
		if !ok {
			g = &GroupStats{Key: k}
			groups[k] = g
		}
		g.Total++
		switch c.Status {
		case models.StatusAprovado:
			g.Approved++
			if c.Rating != nil {
				ratingSums[k] += *c.Rating
				ratingCounts[k]++
			}
		case models.StatusRejeitado:
			g.Rejected++
		default:
			g.Pending++
		}
	}

	result := make([]GroupStats, 0, len(groups))
	for k, g := range groups {
		if ratingCounts[k] > 0 {
			g.AverageRating = float64(ratingSums[k]) / float64(ratingCounts[k])
		}
		result = append(result, *g)
	}

	// Busiest groups first; key order breaks ties for stable output.
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Key < result[j].Key
	})

	return result
}

func byTemplate(checklists []models.Checklist) []TemplateStats {
	groups := make(map[string]*TemplateStats)

	for _, c := range checklists {
		g, ok := groups[c.TemplateID]
		if !ok {
			g = &TemplateStats{TemplateID: c.TemplateID}
			groups[c.TemplateID] = g
		}
		g.Total++
		if c.Status == models.StatusAprovado {
			g.Approved++
		}
	}

	result := make([]TemplateStats, 0, len(groups))
	for _, g := range groups {
		g.ApprovalRate = rate(g.Approved, g.Total)
		result = append(result, *g)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].TemplateID < result[j].TemplateID
	})

	return result
}

// daily builds a per-day series over the filter date range. When no range
// is given the series covers the trailing 7 days ending today.
func daily(checklists []models.Checklist, filter Filter) []DayStats {
	to := time.Now()
	if filter.To != nil {
		to = *filter.To
	}
	from := to.AddDate(0, 0, -6)
	if filter.From != nil {
		from = *filter.From
	}

	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return nil
	}

	byDay := make(map[string]*DayStats)
	var series []DayStats
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		series = append(series, DayStats{Date: day.Format("2006-01-02")})
	}
	for i := range series {
		byDay[series[i].Date] = &series[i]
	}

	for _, c := range checklists {
		d, ok := byDay[c.CreatedAt.Format("2006-01-02")]
		if !ok {
			continue
		}
		d.Total++
		switch c.Status {
		case models.StatusAprovado:
			d.Approved++
		case models.StatusRejeitado:
			d.Rejected++
		default:
			d.Pending++
		}
	}

	return series
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func rate(approved, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(approved) / float64(total) * 100.0
}
