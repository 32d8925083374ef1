package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeAndValidate unmarshals the request body into dst and runs its
// struct tags through the validator.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadRequestBody
	}
	if err := validate.Struct(dst); err != nil {
		return errBadRequestBody
	}
	return nil
}
