package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"nutritrack/internal/calendar"
	"nutritrack/internal/foodlog"
	"nutritrack/internal/profile"
	"nutritrack/internal/waterlog"
	"nutritrack/internal/weightlog"
)

// refreshAggregates recomputes the streak and the weekly rollup for the week
// containing at. Runs synchronously inside the mutating request; failures
// are logged but do not fail the write, since both aggregates converge on
// the next recomputation from the source logs.
func (s *Server) refreshAggregates(r *http.Request, userID string, at time.Time) {
	ctx := r.Context()
	if _, err := s.streaks.Recalculate(ctx, userID); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("streak recompute failed")
	}
	if _, err := s.progress.RecalculateWeek(ctx, userID, at); err != nil {
		log.Error().Err(err).Str("user", userID).Msg("weekly progress recompute failed")
	}
}

// CreateFoodLog records a meal and refreshes the derived aggregates.
func (s *Server) CreateFoodLog(w http.ResponseWriter, r *http.Request) {
	var e foodlog.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	e.ID = ""
	e.UserID = UserID(r.Context())
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.food.Create(r.Context(), &e); err != nil {
		s.writeRepoError(w, err)
		return
	}
	s.refreshAggregates(r, e.UserID, e.LoggedAt)
	writeJSON(w, http.StatusCreated, e)
}

// ListFoodLogs returns the user's entries for a from/to day range
// (inclusive start, exclusive end; defaults to the last 7 days).
func (s *Server) ListFoodLogs(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	start, end, err := dayRange(r, 7)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := s.food.ListInRange(r.Context(), userID, start, end)
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	if entries == nil {
		entries = []foodlog.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// UpdateFoodLog edits an entry and refreshes aggregates for both the old
// and (when moved) the new week.
func (s *Server) UpdateFoodLog(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	id := chi.URLParam(r, "id")

	existing, err := s.food.Get(r.Context(), userID, id)
	if err != nil {
		s.writeRepoError(w, err)
		return
	}

	var e foodlog.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	e.ID = id
	e.UserID = userID
	if e.LoggedAt.IsZero() {
		e.LoggedAt = existing.LoggedAt
	}
	if err := e.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.food.Update(r.Context(), &e); err != nil {
		s.writeRepoError(w, err)
		return
	}

	s.refreshAggregates(r, userID, e.LoggedAt)
	if !calendar.MondayOf(existing.LoggedAt).Equal(calendar.MondayOf(e.LoggedAt)) {
		s.refreshAggregates(r, userID, existing.LoggedAt)
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteFoodLog removes an entry and refreshes the aggregates for its week.
func (s *Server) DeleteFoodLog(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	deleted, err := s.food.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	s.refreshAggregates(r, userID, deleted.LoggedAt)
	w.WriteHeader(http.StatusNoContent)
}

// CreateWaterLog records water intake and refreshes the week's rollup.
func (s *Server) CreateWaterLog(w http.ResponseWriter, r *http.Request) {
	var e waterlog.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	e.ID = ""
	e.UserID = UserID(r.Context())
	if e.AmountMl <= 0 {
		writeError(w, http.StatusBadRequest, "amount_ml must be > 0")
		return
	}
	if err := s.water.Create(r.Context(), &e); err != nil {
		s.writeRepoError(w, err)
		return
	}
	if _, err := s.progress.RecalculateWeek(r.Context(), e.UserID, e.LoggedAt); err != nil {
		log.Error().Err(err).Str("user", e.UserID).Msg("weekly progress recompute failed")
	}
	writeJSON(w, http.StatusCreated, e)
}

// DeleteWaterLog removes a water entry.
func (s *Server) DeleteWaterLog(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	if err := s.water.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		s.writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateWeightLog records a weigh-in.
func (s *Server) CreateWeightLog(w http.ResponseWriter, r *http.Request) {
	var sample weightlog.Sample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sample.ID = ""
	sample.UserID = UserID(r.Context())
	if sample.WeightKg <= 0 {
		writeError(w, http.StatusBadRequest, "weight_kg must be > 0")
		return
	}
	if err := s.weight.Create(r.Context(), &sample); err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sample)
}

// ListWeightLogs returns the user's samples for a from/to day range
// (defaults to the last 30 days).
func (s *Server) ListWeightLogs(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	start, end, err := dayRange(r, 30)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	samples, err := s.weight.SamplesInRange(r.Context(), userID,
		start.Format(calendar.DayFormat), end.Format(calendar.DayFormat))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	if samples == nil {
		samples = []weightlog.Sample{}
	}
	writeJSON(w, http.StatusOK, samples)
}

// DeleteWeightLog removes a weigh-in.
func (s *Server) DeleteWeightLog(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	if err := s.weight.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		s.writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProfile returns the user's stored goal.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := s.profiles.Get(r.Context(), UserID(r.Context()))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

// PutProfile stores the user's goal.
func (s *Server) PutProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Goal profile.Goal `json:"goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !body.Goal.Valid() {
		writeError(w, http.StatusBadRequest, "invalid goal")
		return
	}
	userID := UserID(r.Context())
	if err := s.profiles.Upsert(r.Context(), userID, body.Goal); err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"goal": string(body.Goal)})
}

// GetStreak returns the cached streak record.
func (s *Server) GetStreak(w http.ResponseWriter, r *http.Request) {
	rec, err := s.streaks.Current(r.Context(), UserID(r.Context()))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetWeeklyProgress returns the rollup for the week containing ?date
// (defaults to today).
func (s *Server) GetWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	at := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err := calendar.ParseDay(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		at = day
	}
	rec, err := s.progress.Week(r.Context(), UserID(r.Context()), at)
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetAnalytics returns the maintenance/goal estimate for the trailing
// ?days window (default and minimum 7).
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	res, err := s.analytics.Summary(r.Context(), UserID(r.Context()), days)
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// writeRepoError maps domain and repository failures onto HTTP statuses.
func (s *Server) writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		writeError(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
	default:
		log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// dayRange parses ?from/?to day keys into a [start, end) UTC window, with
// end exclusive one day past ?to. Defaults to the trailing defaultDays.
func dayRange(r *http.Request, defaultDays int) (time.Time, time.Time, error) {
	q := r.URL.Query()
	now := time.Now().UTC()
	end := calendar.StartOfDay(now).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -defaultDays)

	if raw := q.Get("from"); raw != "" {
		day, err := calendar.ParseDay(raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD")
		}
		start = day
	}
	if raw := q.Get("to"); raw != "" {
		day, err := calendar.ParseDay(raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
		}
		end = day.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.New("from must be before to")
	}
	return start, end, nil
}
