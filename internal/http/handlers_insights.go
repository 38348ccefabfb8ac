package http

import (
	"net/http"
	"sort"

	"hisab/internal/core"
)

type calendarDay struct {
	Day int `json:"day"`
	core.DayMarker
}

type aiInsight struct {
	Text string `json:"text"`
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r.URL.Query(), s.now())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	NewJSONResponse().JSON(core.MonthlySummary(s.ledger.Transactions(), p.Year, p.Month)).Write(w)
}

func (s *Server) handleMonthTrend(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r.URL.Query(), s.now())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	NewJSONResponse().JSON(core.MonthlyTrend(s.ledger.Transactions(), p.Year, p.Month)).Write(w)
}

// handleCalendar lists active days in ascending order.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	p, err := ParseMonthParams(r.URL.Query(), s.now())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	markers := core.CalendarDayMarkers(s.ledger.Transactions(), p.Year, p.Month)
	days := make([]calendarDay, 0, len(markers))
	for day, m := range markers {
		days = append(days, calendarDay{Day: day, DayMarker: m})
	}
	sort.Slice(days, func(a, b int) bool { return days[a].Day < days[b].Day })
	NewJSONResponse().JSON(days).Write(w)
}

func (s *Server) handleDailyBreakdown(w http.ResponseWriter, r *http.Request) {
	day, err := ParseDayParam(r.URL.Query(), s.now())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	breakdown := core.DailyCategoryBreakdown(s.ledger.Transactions(), s.ledger.Categories(), day)
	NewJSONResponse().JSON(breakdown).Write(w)
}

func (s *Server) handleAIInsight(w http.ResponseWriter, r *http.Request) {
	text := s.insights.Generate(r.Context(), s.ledger.Transactions(), s.ledger.Categories(), s.ledger.Settings().Currency)
	NewJSONResponse().JSON(aiInsight{Text: text}).Write(w)
}
