// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reports aggregates checklist statistics.

# Aggregation

Aggregate takes a checklist slice and a Filter and computes totals,
approval rate, average rating and the per-technician, per-store,
per-template and per-day breakdowns:

	data := reports.Aggregate(checklists, reports.Filter{
		Status: "aprovado",
	})

The average rating only counts approved checklists that carry a rating.
The daily series spans the filter's date range, or the trailing seven
days when no range is given, with zero-filled days in between.

Everything is computed in memory on each call. The dashboard and the
report endpoint both feed from here, so the numbers always agree.
*/
package reports
