package httpapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"aqicast/internal/forecast"
)

var validate = validator.New()

// ParseDays converts a raw days field. Blank and non-integer input get
// deterministic messages so the form can echo them back.
func ParseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, inputError{msg: "days is required"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, inputError{msg: "days must be a whole number"}
	}
	return n, nil
}

// CheckRequest validates a city/days pair against the horizon limit.
func CheckRequest(city string, days, maxHorizon int) error {
	if err := validate.Var(city, "required,max=128"); err != nil {
		return cityError(err)
	}
	if err := validate.Var(days, fmt.Sprintf("gte=1,lte=%d", maxHorizon)); err != nil {
		return &forecast.HorizonError{Days: days, Max: maxHorizon}
	}
	return nil
}

func cityError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return inputError{msg: "city is required"}
		case "max":
			return inputError{msg: "city name is too long"}
		}
	}
	return inputError{msg: "invalid city"}
}
