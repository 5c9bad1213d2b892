package account

// with pointers if optional, it will be nil
type UpdateProfileRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contactNumber"`
}

// Changes is the sparse field set handed to a store's Update. A nil field is left untouched.
type Changes struct {
	FirstName     *string
	LastName      *string
	Email         *string
	ContactNumber *string
	PasswordHash  *string
}

// Changes keeps only the fields that are present and non-empty.
// An empty string means "not provided", it never clears a field.
func (r UpdateProfileRequest) Changes() Changes {
	return Changes{
		FirstName:     presentValue(r.FirstName),
		LastName:      presentValue(r.LastName),
		Email:         presentValue(r.Email),
		ContactNumber: presentValue(r.ContactNumber),
	}
}

func PasswordChange(hash string) Changes {
	return Changes{PasswordHash: &hash}
}

func (c Changes) IsEmpty() bool {
	return c.FirstName == nil &&
		c.LastName == nil &&
		c.Email == nil &&
		c.ContactNumber == nil &&
		c.PasswordHash == nil
}

// Apply writes the set fields onto a. Used by stores that patch in memory.
func (c Changes) Apply(a Account) Account {
	if c.FirstName != nil {
		a.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		a.LastName = *c.LastName
	}
	if c.Email != nil {
		a.Email = *c.Email
	}
	if c.ContactNumber != nil {
		a.ContactNumber = *c.ContactNumber
	}
	if c.PasswordHash != nil {
		a.PasswordHash = *c.PasswordHash
	}

	return a
}

func presentValue(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}

	out := *v
	return &out
}
