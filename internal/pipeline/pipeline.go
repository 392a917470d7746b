// Package pipeline turns parsed replays into per-player result tables.
//
// Each pipeline owns one aggregate for the whole run. Process is called once
// per replay, in path order; Report is called once after the last replay.
package pipeline

import (
	"io"
	"sort"

	"github.com/pable/csround/internal/identity"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/report"
)

// Pipeline classifies replays and aggregates per-player results.
type Pipeline interface {
	Name() string
	// Process consumes one replay. An error wrapping model.ErrMissingData
	// means the replay was skipped for this pipeline only.
	Process(rep *model.Replay) error
	Report() report.Table
}

// Summarizer is implemented by pipelines that print a terminal summary.
type Summarizer interface {
	Summary(w io.Writer)
}

// Charter is implemented by pipelines that can draw a top-10 chart.
// Players with fewer than minRounds rounds are left out.
type Charter interface {
	Chart(minRounds int) report.Chart
}

// Plotter is implemented by pipelines that draw position scatter plots.
type Plotter interface {
	Plots() []report.Scatter
}

// Env carries what every pipeline shares.
type Env struct {
	Names *identity.Normalizer
	Teams identity.Teams
}

func (e Env) normalize(name string) string {
	if e.Names == nil {
		return name
	}
	return e.Names.Normalize(name)
}

// sortedRounds returns rep's rounds ordered by round number.
func sortedRounds(rep *model.Replay) []model.Round {
	rounds := make([]model.Round, len(rep.Rounds))
	copy(rounds, rep.Rounds)
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
	return rounds
}

// ranked is one player's value in a top-N list.
type ranked struct {
	player string
	value  float64
	row    []string
}

// topN sorts items by value descending, player ascending, and keeps n.
func topN(items []ranked, n int) []ranked {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].value != items[j].value {
			return items[i].value > items[j].value
		}
		return items[i].player < items[j].player
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func rankedRows(items []ranked) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = it.row
	}
	return rows
}

func chartOf(file, title, unit, color string, items []ranked) report.Chart {
	c := report.Chart{File: file, Title: title, Unit: unit, Color: color}
	for _, it := range items {
		c.Labels = append(c.Labels, it.player)
		c.Values = append(c.Values, it.value)
	}
	return c
}

// pct is part/whole*100, or 0 when whole is 0.
func pct(part, whole int) float64 {
	return model.Pct(part, whole)
}
