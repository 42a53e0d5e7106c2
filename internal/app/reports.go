package app

import (
	"fmt"
	"net/http"
	"time"

	"cinebook/api"
)

func (app *Application) GetRevenueReportHandler(w http.ResponseWriter, r *http.Request) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	if fromParam == "" && toParam == "" {
		total, err := app.revenueSvc.TotalIncome(r.Context())
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		resp := api.RevenueReportResponse{TotalIncome: total}

		err = app.writeJSON(w, http.StatusOK, resp, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	from, err := time.Parse(time.DateOnly, fromParam)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("from must be a date in YYYY-MM-DD format"))
		return
	}

	to := from
	if toParam != "" {
		to, err = time.Parse(time.DateOnly, toParam)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("to must be a date in YYYY-MM-DD format"))
			return
		}
	}

	if to.Before(from) {
		app.badRequestResponse(w, r, fmt.Errorf("to must not be before from"))
		return
	}

	total, err := app.revenueSvc.IncomeForRange(r.Context(), from, to)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.RevenueReportResponse{
		TotalIncome: total,
		From:        &from,
		To:          &to,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
