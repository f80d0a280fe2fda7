package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"library-admin/internal/fine"
	"library-admin/internal/models"
	"library-admin/internal/services"
	"library-admin/internal/timeutil"
	"library-admin/pkg/utils"
)

type FineHandler struct {
	Calculator *fine.Calculator
	Clock      timeutil.Clock
}

func NewFineHandler(calc *fine.Calculator, clock timeutil.Clock) *FineHandler {
	return &FineHandler{Calculator: calc, Clock: clock}
}

type fineResponse struct {
	fine.Result
	DaysTakenLabel string          `json:"days_taken_label"`
	PerDay         decimal.Decimal `json:"per_day"`
	Now            time.Time       `json:"now"`
}

// Calculate handles GET /api/fine?borrowed_on=&return_date=&rented_days=&charges=&now=
// borrowed_on may be omitted (the result is then unknown); now defaults to the
// server clock.
func (h *FineHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := map[string]string{}

	borrowedOn, err := models.ParseDate(q.Get("borrowed_on"))
	if err != nil {
		fields["borrowed_on"] = err.Error()
	}
	returned, err := models.ParseDate(q.Get("return_date"))
	if err != nil {
		fields["return_date"] = err.Error()
	}

	rentedDays, err := strconv.Atoi(q.Get("rented_days"))
	if err != nil || rentedDays < 1 {
		fields["rented_days"] = "Ensure this value is greater than or equal to 1."
	}

	charges := decimal.Zero
	if v := q.Get("charges"); v != "" {
		charges, err = decimal.NewFromString(v)
		if err != nil || charges.IsNegative() {
			fields["charges"] = "Ensure this value is greater than or equal to 0."
		}
	}

	now := h.Clock.Now()
	if v := q.Get("now"); v != "" {
		parsed, err := models.ParseDate(v)
		if err != nil {
			fields["now"] = err.Error()
		} else {
			now = parsed.Time
		}
	}

	if len(fields) == 0 && !borrowedOn.IsZero() && !returned.IsZero() &&
		timeutil.StartOfDay(returned.Time).Before(timeutil.StartOfDay(borrowedOn.Time)) {
		fields["return_date"] = "Return date cannot be before the borrowed date."
	}

	if len(fields) > 0 {
		utils.RespondValidation(w, "Invalid fine parameters.", fields)
		return
	}

	rec := &models.BorrowRecord{
		BorrowedOn: borrowedOn,
		ReturnDate: returned,
		RentedDays: rentedDays,
		Charges:    charges,
	}
	res := h.Calculator.Calculate(services.FineInput(rec), now)

	utils.JSON(w, http.StatusOK, fineResponse{
		Result:         res,
		DaysTakenLabel: res.DaysTakenLabel(),
		PerDay:         h.Calculator.PerDay,
		Now:            now,
	})
}
