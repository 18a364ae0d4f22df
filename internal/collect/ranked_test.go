package collect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tagstats/internal/collect"
	"tagstats/internal/matchlog"
)

func TestIsRanked(t *testing.T) {
	base := rankedLog(fillLineup(nil))

	tests := []struct {
		name   string
		mutate func(l *matchlog.Log)
		want   bool
	}{
		{"ranked 4v4", func(l *matchlog.Log) {}, true},
		{"not official", func(l *matchlog.Log) { l.Official = false }, false},
		{"too few players", func(l *matchlog.Log) { l.Players = l.Players[:7] }, false},
		{"no group field", func(l *matchlog.Log) { l.Group = nil }, false},
		{"private group", func(l *matchlog.Log) {
			g := "newballs"
			l.Group = &g
		}, false},
		{"wrong time limit", func(l *matchlog.Log) { l.TimeLimit = 12.0 }, false},
		{"ended too early", func(l *matchlog.Log) {
			l.Duration = collect.MinRankedDuration - 1
		}, false},
		{"exactly minimum duration", func(l *matchlog.Log) {
			l.Duration = collect.MinRankedDuration
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base
			l.Players = append([]matchlog.Player(nil), base.Players...)
			tt.mutate(&l)
			assert.Equal(t, tt.want, collect.IsRanked(&l))
		})
	}
}
