package share

import (
	"encoding/json"
	"time"

	"file-share-api/internal/domain/file"
)

type ShareRequest struct {
	Email string `json:"email"`
}

// LinkRequest distinguishes three expiry shapes: a positive number sets a
// deadline, an explicit JSON null clears any existing one, and an absent
// field leaves it untouched.
type LinkRequest struct {
	ExpiresInHours OptionalHours `json:"expires_in_hours"`
	Password       string        `json:"password"`
}

type LinkResponse struct {
	URL string `json:"url"`
}

// OptionalHours records whether the field appeared in the request body at
// all; UnmarshalJSON is only invoked for present fields, so Set stays false
// for omitted ones.
type OptionalHours struct {
	Set   bool
	Value *float64
}

func (o *OptionalHours) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v

	return nil
}

func ToLinkOptions(req LinkRequest) file.LinkOptions {
	opts := file.LinkOptions{Password: req.Password}

	if req.ExpiresInHours.Set {
		if req.ExpiresInHours.Value == nil {
			opts.ClearExpiry = true
		} else {
			d := time.Duration(*req.ExpiresInHours.Value * float64(time.Hour))
			opts.ExpiresIn = &d
		}
	}

	return opts
}
