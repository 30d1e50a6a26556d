package service

import (
	"time"

	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
)

const dayLayout = "2006-01-02"

// parseDay converts a payload date string into the UTC midnight the
// persistence layer stores.
func parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(dayLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date, expected YYYY-MM-DD")
	}
	return day, nil
}
