package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/domain"
)

const latestNotificationsLimit = 50

func (app *Application) GetNotifications(w http.ResponseWriter, r *http.Request) {
	accountId := app.contextGetAccountId(r)

	notifications, err := app.notificationRepo.GetLatestByAccountId(r.Context(), accountId, latestNotificationsLimit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.NotificationsResponse{
		Notifications: make([]api.Notification, len(notifications)),
	}

	for i, n := range notifications {
		resp.Notifications[i] = api.Notification{
			Id:      n.ID,
			Purpose: string(n.Purpose),
			Message: n.Message,
			Method:  n.Method,
			SentAt:  n.SentAt,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteNotification(w http.ResponseWriter, r *http.Request, notificationId int) {
	err := app.notificationRepo.Delete(r.Context(), notificationId, app.contextGetAccountId(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("notification not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.MessageResponse{Message: "Notification deleted successfully"}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteAllNotifications(w http.ResponseWriter, r *http.Request) {
	deleted, err := app.notificationRepo.DeleteAllByAccountId(r.Context(), app.contextGetAccountId(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.DeleteNotificationsResponse{
		Message: "All notifications deleted successfully",
		Deleted: deleted,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
