package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dashboard"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/routes"
	"github.com/yusaku0324/osakamenesu-sub000/internal/utils"
)

type proxy struct {
	profiles      *dashboard.ProfileClient
	therapists    *dashboard.TherapistClient
	notifications *dashboard.NotificationClient
}

func newProxy(api *apiclient.Client) *proxy {
	return &proxy{
		profiles:      dashboard.NewProfileClient(api),
		therapists:    dashboard.NewTherapistClient(api),
		notifications: dashboard.NewNotificationClient(api),
	}
}

func (p *proxy) registerRoutes(r *mux.Router) {
	r.HandleFunc(routes.DashboardShops, p.createShop).Methods(http.MethodPost)
	r.HandleFunc(routes.DashboardShops+"/{id}/profile", p.getProfile).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/profile", p.putProfile).Methods(http.MethodPut)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists", p.listTherapists).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists", p.createTherapist).Methods(http.MethodPost)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists:reorder", p.reorderTherapists).Methods(http.MethodPost)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists/{tid}", p.getTherapist).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists/{tid}", p.patchTherapist).Methods(http.MethodPatch)
	r.HandleFunc(routes.DashboardShops+"/{id}/therapists/{tid}", p.deleteTherapist).Methods(http.MethodDelete)
	r.HandleFunc(routes.DashboardShops+"/{id}/notifications", p.getNotifications).Methods(http.MethodGet)
	r.HandleFunc(routes.DashboardShops+"/{id}/notifications", p.putNotifications).Methods(http.MethodPut)
	r.HandleFunc(routes.DashboardShops+"/{id}/notifications/test", p.testNotifications).Methods(http.MethodPost)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// sessionOpts forwards the operator's session cookie to the backend.
func sessionOpts(r *http.Request) *apiclient.RequestOptions {
	return &apiclient.RequestOptions{SessionCookie: r.Header.Get("Cookie")}
}

// writeResult maps the closed variant set back onto the HTTP statuses the
// dashboard UI expects. Every variant is handled; there is no default
// success path.
func writeResult[T any](w http.ResponseWriter, res apiclient.Result[T], successStatus int) {
	switch res.Status {
	case apiclient.StatusSuccess:
		if successStatus == http.StatusNoContent {
			utils.RespondWithJSON(w, http.StatusNoContent, nil)
			return
		}
		utils.RespondWithJSON(w, successStatus, res.Data)

	case apiclient.StatusUnauthorized:
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "missing or expired session", nil)

	case apiclient.StatusForbidden:
		msg := res.Message
		if msg == "" {
			msg = "you do not have access to this resource"
		}
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, msg, nil)

	case apiclient.StatusNotFound:
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "resource not found", nil)

	case apiclient.StatusConflict:
		detail := map[string]any{"current": res.Current}
		if res.Unconfirmed {
			detail["unconfirmed"] = true
		}
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "resource was modified by another session", detail)

	case apiclient.StatusValidationError:
		utils.RespondErrorWithCode(w, http.StatusUnprocessableEntity, utils.ErrCodeValidation, "validation failed", json.RawMessage(res.Detail))

	default:
		utils.RespondErrorWithCode(w, http.StatusBadGateway, utils.ErrCodeUpstreamFailure, res.Message, nil)
	}
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return body, false
	}
	return body, true
}

func (p *proxy) createShop(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeBody[dtos.ShopProfile](w, r)
	if !ok {
		return
	}
	writeResult(w, p.profiles.Create(r.Context(), draft, sessionOpts(r)), http.StatusCreated)
}

func (p *proxy) getProfile(w http.ResponseWriter, r *http.Request) {
	writeResult(w, p.profiles.Get(r.Context(), mux.Vars(r)["id"], sessionOpts(r)), http.StatusOK)
}

func (p *proxy) putProfile(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeBody[dtos.ShopProfile](w, r)
	if !ok {
		return
	}
	writeResult(w, p.profiles.Update(r.Context(), mux.Vars(r)["id"], draft, sessionOpts(r)), http.StatusOK)
}

func (p *proxy) listTherapists(w http.ResponseWriter, r *http.Request) {
	writeResult(w, p.therapists.List(r.Context(), mux.Vars(r)["id"], sessionOpts(r)), http.StatusOK)
}

func (p *proxy) createTherapist(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeBody[dtos.TherapistRecord](w, r)
	if !ok {
		return
	}
	writeResult(w, p.therapists.Create(r.Context(), mux.Vars(r)["id"], draft, sessionOpts(r)), http.StatusCreated)
}

func (p *proxy) getTherapist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeResult(w, p.therapists.Get(r.Context(), vars["id"], vars["tid"], sessionOpts(r)), http.StatusOK)
}

func (p *proxy) patchTherapist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	draft, ok := decodeBody[dtos.TherapistRecord](w, r)
	if !ok {
		return
	}
	draft.ID = vars["tid"]
	writeResult(w, p.therapists.Update(r.Context(), vars["id"], draft, sessionOpts(r)), http.StatusOK)
}

func (p *proxy) deleteTherapist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeResult(w, p.therapists.Delete(r.Context(), vars["id"], vars["tid"], sessionOpts(r)), http.StatusNoContent)
}

func (p *proxy) reorderTherapists(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody[dtos.ReorderRequest](w, r)
	if !ok {
		return
	}
	writeResult(w, p.therapists.Reorder(r.Context(), mux.Vars(r)["id"], body.Therapists, sessionOpts(r)), http.StatusOK)
}

func (p *proxy) getNotifications(w http.ResponseWriter, r *http.Request) {
	writeResult(w, p.notifications.Get(r.Context(), mux.Vars(r)["id"], sessionOpts(r)), http.StatusOK)
}

func (p *proxy) putNotifications(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeBody[dtos.NotificationSettings](w, r)
	if !ok {
		return
	}
	writeResult(w, p.notifications.Update(r.Context(), mux.Vars(r)["id"], draft, sessionOpts(r)), http.StatusOK)
}

func (p *proxy) testNotifications(w http.ResponseWriter, r *http.Request) {
	writeResult(w, p.notifications.SendTest(r.Context(), mux.Vars(r)["id"], sessionOpts(r)), http.StatusNoContent)
}
