// Package testbackend is an in-memory implementation of the dashboard API
// contract. It exists so the failover and concurrency behavior of the
// client can be exercised against real HTTP listeners without a running
// backend.
package testbackend

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/routes"
	"github.com/yusaku0324/osakamenesu-sub000/internal/utils"
)

type shopState struct {
	profile       dtos.ShopProfile
	therapists    []dtos.TherapistRecord
	notifications dtos.NotificationSettings
}

// Server holds the fake backend's state. All mutators are safe for
// concurrent use; handlers run under one coarse lock.
type Server struct {
	mu                  sync.Mutex
	router              *mux.Router
	shops               map[string]*shopState
	seq                 int
	requests            map[string]int
	forcedStatus        int
	forcedPaths         map[string]int
	omitConflictCurrent bool
	sessionCookie       string
	forbiddenShops      map[string]bool
}

func New() *Server {
	s := &Server{
		shops:          map[string]*shopState{},
		requests:       map[string]int{},
		forcedPaths:    map[string]int{},
		forbiddenShops: map[string]bool{},
	}

	r := mux.NewRouter()
	r.HandleFunc(routes.Health, s.health).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops, s.createShop).Methods(http.MethodPost)
	r.HandleFunc(routes.DashboardShops+"/{id}/profile", s.getProfile).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/profile", s.putProfile).Methods(http.MethodPut)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists", s.listTherapists).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists", s.createTherapist).Methods(http.MethodPost)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists:reorder", s.reorderTherapists).Methods(http.MethodPost)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists/{tid}", s.getTherapist).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists/{tid}", s.patchTherapist).Methods(http.MethodPatch)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists/{tid}", s.deleteTherapist).Methods(http.MethodDelete)
	r.HandleFunc(routes.DashboardShops+"/{id}/notifications", s.getNotifications).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/notifications", s.putNotifications).Methods(http.MethodPut)
	r.HandleFunc(routes.DashboardShops+"/{id}/notifications/test", s.testNotifications).Methods(http.MethodPost)
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return http.HandlerFunc(s.serve) }

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests[r.Method+" "+r.URL.Path]++
	forced := s.forcedStatus
	if code, ok := s.forcedPaths[r.Method+" "+r.URL.Path]; ok {
		forced = code
	}
	session := s.sessionCookie
	s.mu.Unlock()

	if forced != 0 {
		utils.RespondErrorWithCode(w, forced, utils.ErrCodeInternal, "forced failure", nil)
		return
	}
	if session != "" && r.URL.Path != routes.Health && r.Header.Get("Cookie") != session {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "missing or expired session", nil)
		return
	}
	s.router.ServeHTTP(w, r)
}

// ───────────────────────────── test controls ─────────────────────────────

// ForceStatus makes every subsequent request answer with the given status
// (0 restores normal behavior). Used to simulate a broken base.
func (s *Server) ForceStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedStatus = code
}

// ForceStatusFor makes one specific method+path answer with the given
// status while the rest of the API stays healthy.
func (s *Server) ForceStatusFor(method, path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedPaths[method+" "+path] = code
}

// OmitConflictCurrent drops the detail.current snapshot from 409 bodies so
// the client's recovery path can be exercised.
func (s *Server) OmitConflictCurrent(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitConflictCurrent = v
}

// RequireSession rejects requests whose Cookie header differs from cookie.
func (s *Server) RequireSession(cookie string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionCookie = cookie
}

// ForbidShop makes every request for the given shop answer 403.
func (s *Server) ForbidShop(shopID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forbiddenShops[shopID] = true
}

// RequestCount reports how many times method+path was hit.
func (s *Server) RequestCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method+" "+path]
}

// SeedShop installs a shop with the given state, filling in IDs, display
// orders and version tokens, and returns the shop ID.
func (s *Server) SeedShop(profile dtos.ShopProfile, therapists []dtos.TherapistRecord, notifications dtos.NotificationSettings) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := profile.ID
	if id == "" {
		id = uuid.NewString()
	}
	profile.ID = id
	profile.UpdatedAt = s.nextVersion()

	seeded := make([]dtos.TherapistRecord, len(therapists))
	for i, t := range therapists {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.DisplayOrder == 0 {
			t.DisplayOrder = (i + 1) * 10
		}
		t.UpdatedAt = s.nextVersion()
		seeded[i] = t
	}

	notifications.UpdatedAt = s.nextVersion()

	s.shops[id] = &shopState{
		profile:       profile,
		therapists:    seeded,
		notifications: notifications,
	}
	return id
}

// Profile returns a copy of the stored profile for assertions.
func (s *Server) Profile(shopID string) dtos.ShopProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.shops[shopID]; ok {
		return st.profile
	}
	return dtos.ShopProfile{}
}

// Therapists returns a copy of the stored roster for assertions.
func (s *Server) Therapists(shopID string) []dtos.TherapistRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.shops[shopID]; ok {
		out := make([]dtos.TherapistRecord, len(st.therapists))
		copy(out, st.therapists)
		return out
	}
	return nil
}

// ───────────────────────────── handlers ─────────────────────────────

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// nextVersion mints a fresh updated_at token. Callers hold s.mu.
func (s *Server) nextVersion() string {
	s.seq++
	return time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(s.seq) * time.Second).
		Format(time.RFC3339)
}

// shopFor resolves the shop from the route vars, writing 403/404 itself
// when access is denied or the shop is missing. Callers hold s.mu.
func (s *Server) shopFor(w http.ResponseWriter, r *http.Request) (*shopState, bool) {
	id := mux.Vars(r)["id"]
	if s.forbiddenShops[id] {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "forbidden", "no permission for this shop")
		return nil, false
	}
	st, ok := s.shops[id]
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "shop not found", nil)
		return nil, false
	}
	return st, true
}

func (s *Server) conflict(w http.ResponseWriter, current any) {
	if s.omitConflictCurrent {
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "resource version conflict", nil)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "resource version conflict",
		map[string]any{"current": current})
}

func respondValidation(w http.ResponseWriter, fields map[string]string) {
	utils.RespondErrorWithCode(w, http.StatusUnprocessableEntity, utils.ErrCodeValidation, "validation failed", fields)
}

func (s *Server) createShop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var req dtos.ShopProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, map[string]string{"_": "invalid JSON payload"})
		return
	}
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "this field is required"
	}
	if req.Area == "" {
		fields["area"] = "this field is required"
	}
	if len(fields) > 0 {
		respondValidation(w, fields)
		return
	}

	req.ID = uuid.NewString()
	req.UpdatedAt = s.nextVersion()
	s.shops[req.ID] = &shopState{
		profile:       req,
		notifications: dtos.NotificationSettings{UpdatedAt: s.nextVersion()},
	}
	utils.RespondWithJSON(w, http.StatusCreated, req)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, st.profile)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}

	var req dtos.ShopProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, map[string]string{"_": "invalid JSON payload"})
		return
	}
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "this field is required"
	}
	if req.Area == "" {
		fields["area"] = "this field is required"
	}
	if len(fields) > 0 {
		respondValidation(w, fields)
		return
	}

	if req.UpdatedAt != st.profile.UpdatedAt {
		s.conflict(w, st.profile)
		return
	}

	req.ID = st.profile.ID
	req.UpdatedAt = s.nextVersion()
	st.profile = req
	utils.RespondWithJSON(w, http.StatusOK, st.profile)
}

func (s *Server) listTherapists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}
	out := make([]dtos.TherapistRecord, len(st.therapists))
	copy(out, st.therapists)
	utils.RespondWithJSON(w, http.StatusOK, dtos.TherapistList{Therapists: out})
}

func (s *Server) createTherapist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}

	var req dtos.TherapistRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, map[string]string{"_": "invalid JSON payload"})
		return
	}
	if req.Name == "" {
		respondValidation(w, map[string]string{"name": "this field is required"})
		return
	}

	req.ID = uuid.NewString()
	req.DisplayOrder = (len(st.therapists) + 1) * 10
	req.UpdatedAt = s.nextVersion()
	st.therapists = append(st.therapists, req)
	utils.RespondWithJSON(w, http.StatusCreated, req)
}

func (s *Server) findTherapist(st *shopState, tid string) int {
	for i, t := range st.therapists {
		if t.ID == tid {
			return i
		}
	}
	return -1
}

func (s *Server) getTherapist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}
	i := s.findTherapist(st, mux.Vars(r)["tid"])
	if i < 0 {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "therapist not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, st.therapists[i])
}

func (s *Server) patchTherapist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}
	i := s.findTherapist(st, mux.Vars(r)["tid"])
	if i < 0 {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "therapist not found", nil)
		return
	}

	var req dtos.TherapistRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, map[string]string{"_": "invalid JSON payload"})
		return
	}
	if req.Name == "" {
		respondValidation(w, map[string]string{"name": "this field is required"})
		return
	}

	if req.UpdatedAt != st.therapists[i].UpdatedAt {
		s.conflict(w, st.therapists[i])
		return
	}

	req.ID = st.therapists[i].ID
	req.DisplayOrder = st.therapists[i].DisplayOrder
	req.UpdatedAt = s.nextVersion()
	st.therapists[i] = req
	utils.RespondWithJSON(w, http.StatusOK, st.therapists[i])
}

func (s *Server) deleteTherapist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}
	i := s.findTherapist(st, mux.Vars(r)["tid"])
	if i < 0 {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "therapist not found", nil)
		return
	}
	st.therapists = append(st.therapists[:i], st.therapists[i+1:]...)
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

func (s *Server) reorderTherapists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}

	var req dtos.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, map[string]string{"_": "invalid JSON payload"})
		return
	}

	orders := make(map[string]int, len(req.Therapists))
	for _, a := range req.Therapists {
		if s.findTherapist(st, a.ID) < 0 {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "therapist not found", nil)
			return
		}
		orders[a.ID] = a.DisplayOrder
	}

	for i := range st.therapists {
		if order, ok := orders[st.therapists[i].ID]; ok && order != st.therapists[i].DisplayOrder {
			st.therapists[i].DisplayOrder = order
			st.therapists[i].UpdatedAt = s.nextVersion()
		}
	}
	sort.SliceStable(st.therapists, func(a, b int) bool {
		return st.therapists[a].DisplayOrder < st.therapists[b].DisplayOrder
	})

	out := make([]dtos.TherapistRecord, len(st.therapists))
	copy(out, st.therapists)
	utils.RespondWithJSON(w, http.StatusOK, dtos.TherapistList{Therapists: out})
}

func (s *Server) getNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, st.notifications)
}

func (s *Server) putNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}

	var req dtos.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, map[string]string{"_": "invalid JSON payload"})
		return
	}
	if !req.EmailEnabled && !req.LineEnabled && !req.SlackEnabled {
		respondValidation(w, map[string]string{"_": "enable at least one notification channel"})
		return
	}

	if req.UpdatedAt != st.notifications.UpdatedAt {
		s.conflict(w, st.notifications)
		return
	}

	req.UpdatedAt = s.nextVersion()
	st.notifications = req
	utils.RespondWithJSON(w, http.StatusOK, st.notifications)
}

func (s *Server) testNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.shopFor(w, r)
	if !ok {
		return
	}
	n := st.notifications
	if !n.EmailEnabled && !n.LineEnabled && !n.SlackEnabled {
		respondValidation(w, map[string]string{"_": "no notification channel is enabled"})
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}
