package collect

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"tagstats/internal/events"
	"tagstats/internal/matchlog"
)

// EightMinuteMark is regulation time in ticks. Record boards are kept
// both for the whole match (overtime included) and for play up to this
// mark.
const EightMinuteMark = 8 * 60 * 60

// quickWindow is the span inside which a grab that gets dropped counts
// as a flaccid grab, and a return after an opposing grab counts as a
// quick return.
const quickWindow = 2 * 60

// recordBoardSize caps each leaderboard at the top N values per outcome.
const recordBoardSize = 5

// recordEventKinds are the event kinds the record boards are built from.
var recordEventKinds = map[events.Kind]bool{
	events.KindCapture:          true,
	events.KindGrab:             true,
	events.KindDrop:             true,
	events.KindReturn:           true,
	events.KindTag:              true,
	events.KindPop:              true,
	events.KindPowerup:          true,
	events.KindDuplicatePowerup: true,
	events.KindStartPrevent:     true,
	events.KindStopPrevent:      true,
	events.KindStartButton:      true,
	events.KindStopButton:       true,
	events.KindQuit:             true,
}

// recordStatOrder lists the leaderboards in report order. The key indexes
// the boards; the title heads the section in the text report.
var recordStatOrder = []struct {
	key   string
	title string
}{
	{"caps", "Captures"},
	{"returns", "Returns"},
	{"tags", "Tags"},
	{"pops", "Pops"},
	{"grabs", "Grabs"},
	{"hold", "Hold (seconds)"},
	{"prevent", "Prevent (seconds)"},
	{"button", "Button Time (seconds)"},
	{"pups", "Powerups"},
	{"quick_returns", "Quick Returns"},
	{"flaccid_grabs", "Flaccid Grabs"},
	{"tags_no_pops", "Tags (No Pops)"},
	{"returns_no_grabs", "Returns (No Grabs)"},
	{"hold_no_returns", "Hold (No Returns, seconds)"},
	{"caps_no_returns", "Caps (No Returns)"},
}

// recordEntry is one (match, player) pair at a given leaderboard value.
type recordEntry struct {
	matchID string
	player  string
}

// leaderboard groups entries by stat value so ties share a rank.
type leaderboard map[int][]recordEntry

func (b leaderboard) add(value int, matchID, player string) {
	b[value] = append(b[value], recordEntry{matchID: matchID, player: player})
}

// statBoards holds one leaderboard per stat key, split by match outcome.
type statBoards struct {
	wins   map[string]leaderboard
	losses map[string]leaderboard
}

func newStatBoards() statBoards {
	return statBoards{
		wins:   make(map[string]leaderboard),
		losses: make(map[string]leaderboard),
	}
}

func (b *statBoards) add(key string, value int, matchID, player string, win bool) {
	side := b.losses
	if win {
		side = b.wins
	}
	board, ok := side[key]
	if !ok {
		board = make(leaderboard)
		side[key] = board
	}
	board.add(value, matchID, player)
}

// gameRecordStats is one player's record stat line over a single window
// of a match.
type gameRecordStats struct {
	caps         int
	returns      int
	tags         int
	pops         int
	grabs        int
	pups         int
	quickReturns int
	flaccidGrabs int

	hold    int
	prevent int
	button  int

	holdStart    *int
	preventStart *int
	buttonStart  *int
	lastGrab     *int
}

// closeSpan settles an open time span at the given tick, clamped to the
// window cutoff. Spans that start at or past the cutoff contribute
// nothing.
func closeSpan(acc *int, start **int, tick, cutoff int) {
	if *start == nil {
		return
	}
	end := tick
	if cutoff < end {
		end = cutoff
	}
	if **start < cutoff {
		*acc += end - **start
	}
	*start = nil
}

// finalize settles any spans still open when the window ends.
func (s *gameRecordStats) finalize(endTime, cutoff int) {
	closeSpan(&s.hold, &s.holdStart, endTime, cutoff)
	closeSpan(&s.prevent, &s.preventStart, endTime, cutoff)
	closeSpan(&s.button, &s.buttonStart, endTime, cutoff)
}

// recordWindowState is the cross-player state of one replay window: the
// tick each team's flag was last grabbed at, for quick-return checks.
type recordWindowState struct {
	redGrabTime  *int
	blueGrabTime *int
}

// apply folds a single timeline event into the stat line. Events past
// the window cutoff are ignored.
func (s *gameRecordStats) apply(ev relevantEvent, st *recordWindowState, cutoff int) {
	if ev.time > cutoff {
		return
	}
	t := ev.time

	switch ev.kind {
	case events.KindCapture:
		s.caps++
		s.holdStart = nil
		switch ev.team {
		case events.TeamRed:
			st.redGrabTime = nil
		case events.TeamBlue:
			st.blueGrabTime = nil
		}

	case events.KindGrab:
		s.grabs++
		s.holdStart = &t
		s.lastGrab = &t
		switch ev.team {
		case events.TeamRed:
			st.redGrabTime = &t
		case events.TeamBlue:
			st.blueGrabTime = &t
		}

	case events.KindDrop:
		// A drop is also a pop.
		s.pops++
		closeSpan(&s.hold, &s.holdStart, t, cutoff)
		if s.lastGrab != nil && t > *s.lastGrab && t-*s.lastGrab < quickWindow {
			s.flaccidGrabs++
		}
		switch ev.team {
		case events.TeamRed:
			st.redGrabTime = nil
		case events.TeamBlue:
			st.blueGrabTime = nil
		}

	case events.KindReturn:
		// A return is also a tag.
		s.returns++
		s.tags++
		var opponentGrab *int
		switch ev.team {
		case events.TeamRed:
			opponentGrab = st.blueGrabTime
		case events.TeamBlue:
			opponentGrab = st.redGrabTime
		}
		if opponentGrab != nil && t > *opponentGrab && t-*opponentGrab < quickWindow {
			s.quickReturns++
		}

	case events.KindTag:
		s.tags++

	case events.KindPop:
		s.pops++

	case events.KindPowerup, events.KindDuplicatePowerup:
		s.pups++

	case events.KindStartPrevent:
		s.preventStart = &t

	case events.KindStopPrevent:
		closeSpan(&s.prevent, &s.preventStart, t, cutoff)

	case events.KindStartButton:
		s.buttonStart = &t

	case events.KindStopButton:
		closeSpan(&s.button, &s.buttonStart, t, cutoff)

	case events.KindQuit:
		// A quit settles whatever the player had open. It does not count
		// as a pop on the record boards.
		s.finalize(t, cutoff)
	}
}

// RecordsCollector accumulates per-game stat leaderboards across ranked
// matches: each board keeps the (match, player) pairs behind the top
// single-game values, split into wins and losses, over both the full
// match and the first eight minutes.
type RecordsCollector struct {
	full   statBoards
	first8 statBoards
}

func NewRecordsCollector() *RecordsCollector {
	return &RecordsCollector{
		full:   newStatBoards(),
		first8: newStatBoards(),
	}
}

// ProcessMatch replays one match's merged event timeline into the boards.
// Matches that do not pass the ranked gate are skipped.
func (rc *RecordsCollector) ProcessMatch(id string, l *matchlog.Log) error {
	if !IsRanked(l) {
		return nil
	}

	var timeline []relevantEvent
	for idx, player := range l.Players {
		reader, err := events.NewReader(player.Events)
		if err != nil {
			return fmt.Errorf("player %q: %w", player.Name, err)
		}
		team := events.Team(player.Team)
		for _, ev := range reader.PlayerEvents(team, l.Duration) {
			if recordEventKinds[ev.Kind] {
				timeline = append(timeline, relevantEvent{
					time:        ev.Time,
					kind:        ev.Kind,
					playerIndex: idx,
					team:        ev.Team,
				})
			}
		}
	}
	sort.SliceStable(timeline, func(i, j int) bool { return timeline[i].time < timeline[j].time })

	full := make([]gameRecordStats, len(l.Players))
	first8 := make([]gameRecordStats, len(l.Players))
	var fullState, first8State recordWindowState

	capDiff := 0
	for _, ev := range timeline {
		full[ev.playerIndex].apply(ev, &fullState, l.Duration)
		if ev.time <= EightMinuteMark {
			first8[ev.playerIndex].apply(ev, &first8State, EightMinuteMark)
		}
		if ev.kind == events.KindCapture {
			switch ev.team {
			case events.TeamRed:
				capDiff++
			case events.TeamBlue:
				capDiff--
			}
		}
	}

	for idx := range l.Players {
		full[idx].finalize(l.Duration, l.Duration)
		first8[idx].finalize(l.Duration, EightMinuteMark)
	}

	for idx, player := range l.Players {
		var win bool
		switch events.Team(player.Team) {
		case events.TeamRed:
			win = capDiff > 0
		case events.TeamBlue:
			win = capDiff < 0
		}
		insertPlayerRecords(&rc.full, id, player.Name, &full[idx], win)
		insertPlayerRecords(&rc.first8, id, player.Name, &first8[idx], win)
	}
	return nil
}

// insertPlayerRecords files one stat line onto a board group. Time stats
// go on in whole seconds; the conditional boards only take players whose
// line actually qualifies.
func insertPlayerRecords(boards *statBoards, matchID, player string, s *gameRecordStats, win bool) {
	boards.add("caps", s.caps, matchID, player, win)
	boards.add("returns", s.returns, matchID, player, win)
	boards.add("tags", s.tags, matchID, player, win)
	boards.add("pops", s.pops, matchID, player, win)
	boards.add("grabs", s.grabs, matchID, player, win)
	boards.add("pups", s.pups, matchID, player, win)
	boards.add("quick_returns", s.quickReturns, matchID, player, win)
	boards.add("flaccid_grabs", s.flaccidGrabs, matchID, player, win)
	boards.add("hold", s.hold/60, matchID, player, win)
	boards.add("prevent", s.prevent/60, matchID, player, win)
	boards.add("button", s.button/60, matchID, player, win)

	if s.tags > 0 && s.pops == 0 {
		boards.add("tags_no_pops", s.tags, matchID, player, win)
	}
	if s.returns > 0 && s.grabs == 0 {
		boards.add("returns_no_grabs", s.returns, matchID, player, win)
	}
	if s.hold > 0 && s.returns == 0 {
		boards.add("hold_no_returns", s.hold/60, matchID, player, win)
	}
	if s.caps > 0 && s.returns == 0 {
		boards.add("caps_no_returns", s.caps, matchID, player, win)
	}
}

// reportRow is one rendered leaderboard line.
type reportRow struct {
	matchID string
	player  string
	value   int
	win     bool
}

// topRows walks a board from its highest value down and keeps every
// entry whose rank lands inside the top n. Ties share a rank, so a tier
// is taken whole. Zero values never make the board.
func topRows(b leaderboard, n int, win bool) []reportRow {
	values := make([]int, 0, len(b))
	for v := range b {
		if v != 0 {
			values = append(values, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	var rows []reportRow
	rank := 1
	for _, v := range values {
		if rank > n {
			break
		}
		for _, e := range b[v] {
			rows = append(rows, reportRow{matchID: e.matchID, player: e.player, value: v, win: win})
		}
		rank += len(b[v])
	}
	return rows
}

// WriteReport renders the accumulated boards as the all-time records
// text report.
func (rc *RecordsCollector) WriteReport(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "=== ALL-TIME RANKED TAGPRO RECORDS ===\n\n")
	writeRecordSection(&buf, "FULL GAME RECORDS (Including Overtime)", &rc.full)
	writeRecordSection(&buf, "FIRST 8 MINUTES RECORDS", &rc.first8)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write records report: %w", err)
	}
	return nil
}

func writeRecordSection(buf *bytes.Buffer, title string, boards *statBoards) {
	fmt.Fprintf(buf, "## %s\n\n", title)
	for _, stat := range recordStatOrder {
		writeRecordBoard(buf, stat.title, boards.wins[stat.key], boards.losses[stat.key])
	}
}

// writeRecordBoard merges the top win and top loss performances for one
// stat and prints them by value, best first.
func writeRecordBoard(buf *bytes.Buffer, title string, wins, losses leaderboard) {
	fmt.Fprintf(buf, "### %s\n", title)

	rows := topRows(wins, recordBoardSize, true)
	rows = append(rows, topRows(losses, recordBoardSize, false)...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].value != rows[j].value {
			return rows[i].value > rows[j].value
		}
		return rows[i].player < rows[j].player
	})

	if len(rows) == 0 {
		fmt.Fprintf(buf, "No records found.\n\n")
		return
	}
	for _, row := range rows {
		status := "Loss"
		if row.win {
			status = "Win"
		}
		fmt.Fprintf(buf, "  Match %s: %s - %d (%s)\n", row.matchID, row.player, row.value, status)
	}
	fmt.Fprintf(buf, "\n")
}

// WriteRecords walks ranked matches into a records collector and writes
// the text report.
func (c *Collector) WriteRecords(w io.Writer) error {
	rc := NewRecordsCollector()
	err := c.walkRanked(func(id string, l *matchlog.Log) error {
		return rc.ProcessMatch(id, l)
	})
	if err != nil {
		return err
	}
	return rc.WriteReport(w)
}
