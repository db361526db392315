package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/config"
)

type pregnancyCalculation struct {
	LmpDate          string `json:"lmpDate"`
	EddDate          string `json:"eddDate"`
	GestationalWeeks int    `json:"gestationalWeeks"`
	GestationalDays  int    `json:"gestationalDays"`
	Trimester        int    `json:"trimester"`
	SecondAncVisit   string `json:"secondAncVisit"` // start of weeks 14-26 window
	ThirdAncVisit    string `json:"thirdAncVisit"`  // start of weeks 28-34 window
	FourthAncVisit   string `json:"fourthAncVisit"` // week 36 onwards
}

// PregnancyCalculatorHandler derives the expected delivery date and ANC
// visit windows from the last menstrual period (Naegele's rule, LMP+280d)
func PregnancyCalculatorHandler(w http.ResponseWriter, r *http.Request) {
	lmpParam := r.URL.Query().Get("lmp")
	lmp, err := ancstats.ParseRecordDate(lmpParam)
	if err != nil {
		config.ErrorStatus("invalid lmp date", http.StatusBadRequest, w, err)
		return
	}

	asOfParam := r.URL.Query().Get("as_of")
	asOf := time.Now().UTC()
	if asOfParam != "" {
		asOf, err = ancstats.ParseRecordDate(asOfParam)
		if err != nil {
			config.ErrorStatus("invalid as_of date", http.StatusBadRequest, w, err)
			return
		}
	}
	if asOf.Before(lmp) {
		config.ErrorStatus("as_of date before lmp", http.StatusBadRequest, w, fmt.Errorf("as_of %s precedes lmp %s", asOfParam, lmpParam))
		return
	}

	elapsed := int(asOf.Sub(lmp).Hours() / 24)
	weeks := elapsed / 7

	trimester := 1
	switch {
	case weeks >= 27:
		trimester = 3
	case weeks >= 13:
		trimester = 2
	}

	calc := pregnancyCalculation{
		LmpDate:          lmp.Format("2006-01-02"),
		EddDate:          lmp.AddDate(0, 0, 280).Format("2006-01-02"),
		GestationalWeeks: weeks,
		GestationalDays:  elapsed % 7,
		Trimester:        trimester,
		SecondAncVisit:   lmp.AddDate(0, 0, 14*7).Format("2006-01-02"),
		ThirdAncVisit:    lmp.AddDate(0, 0, 28*7).Format("2006-01-02"),
		FourthAncVisit:   lmp.AddDate(0, 0, 36*7).Format("2006-01-02"),
	}

	b, err := json.Marshal(calc)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
