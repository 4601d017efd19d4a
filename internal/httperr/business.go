package httperr

import "errors"

// BusinessError carries a stable machine-readable code. The scheduling core
// returns these for every guard failure:
//
//	invalid_request, invalid_date_or_time  malformed input
//	past_date                              slot not strictly in the future
//	outside_working_hours                  no active window / time not offered
//	slot_unavailable                       blocking appointment holds the slot
//	appointment_not_found                  missing or not owned by the caller
//	invalid_state                          transition not allowed from status
//	not_yet_due                            completion before the visit time
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
